package config

import (
	"encoding/json"
	"os"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Only fields
// present in the file overlay the runtime Config.
type jsonConfig struct {
	StoreBackend   *string `json:"store_backend"`
	DataDir        *string `json:"data_dir"`
	DatabaseDSN    *string `json:"database_dsn"`
	SecretKey      *string `json:"secret_key"`
	FastMode       *bool   `json:"fast_mode"`
	S3RootUser     *string `json:"s3_root_user"`
	S3RootPassword *string `json:"s3_root_password"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// No file flag means no JSON stage. Read or parse failures panic, matching
// the fail-fast startup behavior of the flags stage.
func parseJson(cfg *Config) {
	path := configFileFromArgs(osArgs())
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreBackend != nil {
		cfg.StoreBackend = *jc.StoreBackend
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.FastMode != nil {
		cfg.FastMode = *jc.FastMode
	}
	if jc.S3RootUser != nil {
		cfg.S3RootUser = *jc.S3RootUser
	}
	if jc.S3RootPassword != nil {
		cfg.S3RootPassword = *jc.S3RootPassword
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *jc.S3BaseEndpoint
	}
}
