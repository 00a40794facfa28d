package provider

import (
	"context"
	"fmt"
	"time"
)

// Provider is the base interface all backends implement.
type Provider interface {
	// Name returns the provider's registered name.
	Name() string
	// IsAvailable reports whether the provider is configured to serve requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)

// String reads an optional string option.
func String(cfg map[string]any, key string) string {
	v, _ := cfg[key].(string)
	return v
}

// Float reads an optional numeric option.
func Float(cfg map[string]any, key string) (float64, bool) {
	switch v := cfg[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Duration reads an optional duration given as time.Duration or a string
// such as "90s".
func Duration(cfg map[string]any, key string) (time.Duration, error) {
	switch v := cfg[key].(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return v, nil
	case string:
		if v == "" {
			return 0, nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("option %s: %w", key, err)
		}
		return d, nil
	}
	return 0, fmt.Errorf("option %s: unsupported type %T", key, cfg[key])
}
