// Package usecase はgoldフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrStorage is returned when the backing store cannot be read or written.
	ErrStorage = errors.New("storage error")

	// ErrIdempotencyKeyReused is returned when an Idempotency-Key is replayed with a different amount.
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")

	// ErrIdempotencyInProgress is returned while the first request for an Idempotency-Key is still running.
	ErrIdempotencyInProgress = errors.New("request with this idempotency key is in progress")

	// ErrIdempotencyUnavailable is returned when the idempotency store cannot be reached.
	ErrIdempotencyUnavailable = errors.New("idempotency store unavailable")
)
