package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-key-enroll/models"
)

type fileStore struct {
	path     string
	inMemory bool

	mu              sync.RWMutex
	bundles         map[models.KeyBundleName]*models.KeyBundle
	clientDirective *models.ClientDirective
}

type persistedState struct {
	Bundles         []models.KeyBundle      `json:"bundles"`
	ClientDirective *models.ClientDirective `json:"client_directive,omitempty"`
}

// NewFileStore opens a JSON file backed key registry at path. An empty path
// or ":memory:" yields a purely in-memory registry that is lost on restart.
// An existing file is loaded eagerly so a corrupt registry fails at startup
// rather than mid-attempt.
func NewFileStore(path string) (Store, error) {
	if path == "" {
		path = ":memory:"
	}

	inMemory := path == ":memory:" || path == "memory"
	s := &fileStore{
		path:     path,
		inMemory: inMemory,
		bundles:  make(map[models.KeyBundleName]*models.KeyBundle),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read registry file: %w", err)
	}

	var st persistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode registry file: %w", err)
	}

	for i := range st.Bundles {
		bundle := st.Bundles[i]
		s.bundles[bundle.Name] = &bundle
	}
	s.clientDirective = st.ClientDirective

	return nil
}

func (s *fileStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create registry dir: %w", err)
		}
	}

	// Walk the canonical bundle order so the file stays diffable.
	state := persistedState{ClientDirective: s.clientDirective}
	for _, name := range models.KeyBundleOrder() {
		if bundle, ok := s.bundles[name]; ok {
			state.Bundles = append(state.Bundles, *bundle)
		}
	}

	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write registry file: %w", err)
	}

	return nil
}

func (s *fileStore) GetKeyBundle(ctx context.Context, name models.KeyBundleName) (models.KeyBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bundle, ok := s.bundles[name]
	if !ok {
		return models.NewKeyBundle(name), nil
	}

	return snapshotBundle(bundle), nil
}

func (s *fileStore) AddEnrolledKey(ctx context.Context, name models.KeyBundleName, key models.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureBundle(name).AddKey(key)

	return s.persist()
}

func (s *fileStore) DeleteKey(ctx context.Context, name models.KeyBundleName, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundle, ok := s.bundles[name]
	if !ok {
		return nil
	}
	bundle.DeleteKey(handle)

	return s.persist()
}

func (s *fileStore) SetActiveKey(ctx context.Context, name models.KeyBundleName, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundle, ok := s.bundles[name]
	if !ok {
		return fmt.Errorf("%w: bundle %q", ErrKeyNotFound, name)
	}
	if !bundle.SetActiveKey(handle) {
		return fmt.Errorf("%w: bundle %q handle %q", ErrKeyNotFound, name, handle)
	}

	return s.persist()
}

func (s *fileStore) SetKeyDirective(ctx context.Context, name models.KeyBundleName, directive models.KeyDirective) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureBundle(name).KeyDirective = &directive

	return s.persist()
}

func (s *fileStore) GetClientDirective(ctx context.Context) (*models.ClientDirective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.clientDirective == nil {
		return nil, nil
	}

	directive := *s.clientDirective
	return &directive, nil
}

func (s *fileStore) SetClientDirective(ctx context.Context, directive models.ClientDirective) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clientDirective = &directive

	return s.persist()
}

func (s *fileStore) ensureBundle(name models.KeyBundleName) *models.KeyBundle {
	bundle, ok := s.bundles[name]
	if !ok {
		created := models.NewKeyBundle(name)
		bundle = &created
		s.bundles[name] = bundle
	}
	return bundle
}

// snapshotBundle copies the bundle so callers never share mutable state with
// the store. Key material byte slices are not copied; callers treat them as
// read-only.
func snapshotBundle(bundle *models.KeyBundle) models.KeyBundle {
	snapshot := models.KeyBundle{Name: bundle.Name}

	if len(bundle.Keys) > 0 {
		snapshot.Keys = make([]models.Key, len(bundle.Keys))
		copy(snapshot.Keys, bundle.Keys)
	}
	if bundle.KeyDirective != nil {
		directive := *bundle.KeyDirective
		snapshot.KeyDirective = &directive
	}

	return snapshot
}
