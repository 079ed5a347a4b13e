package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultTTL is the snapshot time-to-live used when no explicit configuration
// is provided. Five minutes is coarse enough that duplicated fetches on
// concurrent misses stay cheap, and short enough for admin-facing list pages.
const DefaultTTL = 5 * time.Minute

// Config exposes the cache configuration options. TTL is fixed per cache
// instance and immutable after construction.
type Config struct {
	// TTL is the fixed time-to-live for cached snapshots. After this duration
	// an entry is treated as absent by Get. Must be at least one second.
	TTL time.Duration
}

// DefaultConfig returns a Config populated with the default TTL.
func DefaultConfig() Config {
	return Config{TTL: DefaultTTL}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Second)),
	)
}
