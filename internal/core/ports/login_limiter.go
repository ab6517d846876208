package ports

import "context"

// LoginLimiter throttles repeated failed logins per identifier.
type LoginLimiter interface {
	// TooMany reports whether the identifier has exhausted its attempts.
	TooMany(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
