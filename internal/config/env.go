// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested groups (APP_, STORAGE_,
// SERVER_, ADAPTER_, ENROLLER_, WORKERS_).
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type, such as a malformed duration).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
