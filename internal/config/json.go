package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		HashKey       string   `json:"hash_key"`
		InstanceID    string   `json:"instance_id"`
		DeviceModel   string   `json:"device_model"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			RegistryPath string `json:"registry_path"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		AuthorityAddress string   `json:"authority_address"`
		RequestTimeout   Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Enroller struct {
		SyncKeysTimeout    Duration `json:"sync_keys_timeout"`
		KeyCreationTimeout Duration `json:"key_creation_timeout"`
		EnrollKeysTimeout  Duration `json:"enroll_keys_timeout"`
	} `json:"enroller,omitempty"`

	Workers struct {
		CheckinInterval Duration `json:"checkin_interval"`
		RetryPeriod     Duration `json:"retry_period"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			HashKey:       jsonCfg.App.HashKey,
			InstanceID:    jsonCfg.App.InstanceID,
			DeviceModel:   jsonCfg.App.DeviceModel,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				RegistryPath: jsonCfg.Storage.Files.RegistryPath,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			AuthorityAddress: jsonCfg.Adapter.AuthorityAddress,
			RequestTimeout:   time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Enroller: Enroller{
			SyncKeysTimeout:    time.Duration(jsonCfg.Enroller.SyncKeysTimeout),
			KeyCreationTimeout: time.Duration(jsonCfg.Enroller.KeyCreationTimeout),
			EnrollKeysTimeout:  time.Duration(jsonCfg.Enroller.EnrollKeysTimeout),
		},
		Workers: Workers{
			CheckinInterval: time.Duration(jsonCfg.Workers.CheckinInterval),
			RetryPeriod:     time.Duration(jsonCfg.Workers.RetryPeriod),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
