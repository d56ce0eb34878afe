package config

import "os"

// parseEnv overlays values from environment variables. Only the variables the
// deployment environment is expected to provide are recognized; everything
// else comes from the JSON file or flags.
func parseEnv(config *Config) {
	if v := os.Getenv("API_SERVER_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		config.SendgridAPIKey = v
	}
	if v := os.Getenv("SENDGRID_REG_CODE_TEMPLATE_ID"); v != "" {
		config.SendgridTemplateID = v
	}
	if v := os.Getenv("SENDGRID_MAIL_SENDER"); v != "" {
		config.SendgridSender = v
	}
}
