package api

import "strings"

// Config for api configuration variables.
type Config struct {
	EnableCORS bool
	Listen     string
}

// ViewHost returns the host shown on banner and confirmation pages. A bare
// port listen address maps to localhost.
func (config *Config) ViewHost() string {
	if strings.HasPrefix(config.Listen, ":") {
		return "localhost" + config.Listen
	}
	return config.Listen
}
