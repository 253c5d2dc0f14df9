package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of uploaded workbooks, in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
}

const defaultBodyLimitMB = 32

// BodyLimitBytes returns the upload cap in bytes, falling back to the
// default when the configured value is not positive.
func (c Config) BodyLimitBytes() int {
	limit := c.BodyLimitMB
	if limit <= 0 {
		limit = defaultBodyLimitMB
	}
	return limit * 1024 * 1024
}
