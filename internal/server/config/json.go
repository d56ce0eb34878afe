package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/adhalianna/trackers/internal/flagx"
	"github.com/adhalianna/trackers/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	KeyID                        string         `json:"key_id"`
	Issuer                       string         `json:"issuer"`
	Audience                     string         `json:"audience"`
	Realm                        string         `json:"realm"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3User                       string         `json:"s3_user"`
	S3Password                   string         `json:"s3_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	SendgridAPIKey               string         `json:"sendgrid_api_key"`
	SendgridTemplateID           string         `json:"sendgrid_template_id"`
	SendgridSender               string         `json:"sendgrid_sender"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.KeyID != "" {
		config.KeyID = c.KeyID
	}
	if c.Issuer != "" {
		config.Issuer = c.Issuer
	}
	if c.Audience != "" {
		config.Audience = c.Audience
	}
	if c.Realm != "" {
		config.Realm = c.Realm
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	}
	if c.S3User != "" {
		config.S3User = c.S3User
	}
	if c.S3Password != "" {
		config.S3Password = c.S3Password
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.SendgridAPIKey != "" {
		config.SendgridAPIKey = c.SendgridAPIKey
	}
	if c.SendgridTemplateID != "" {
		config.SendgridTemplateID = c.SendgridTemplateID
	}
	if c.SendgridSender != "" {
		config.SendgridSender = c.SendgridSender
	}
}
