package ratelimit

// Limiter decides whether a request keyed by client may proceed.
type Limiter interface {
	Allow(key string) bool
}
