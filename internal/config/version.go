package config

import "time"

// Version is stamped at build time via -ldflags.
var Version = "dev"

// GetEnvReloadedAt reports when configuration was last loaded from the
// environment.
func GetEnvReloadedAt() time.Time {
	if globalConfig == nil {
		return time.Time{}
	}
	return globalConfig.EnvReloadedAt
}
