package module

import (
	"time"

	"triage/internal/platform/config"
)

// Options controls triage behavior
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

// FromConfig reads TRIAGE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	tc := cfg.Prefix("TRIAGE_")
	return Options{
		CacheSize: tc.MayInt("CACHE_SIZE", 1000),
		CacheTTL:  tc.MayDuration("CACHE_TTL", time.Hour),
	}
}
