package workers

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers so the application can start them
// with a single Run call.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
