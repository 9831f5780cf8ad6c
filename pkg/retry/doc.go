// Package retry provides exponential backoff retry for transient failures.
//
// Store backends use it around remote calls. A failure ends the loop early
// when it is wrapped with NonRetryable or when Config.Retryable rejects it:
//
//	cfg := retry.DefaultConfig()
//	cfg.Retryable = errors.IsTransient
//	err := retry.Do(ctx, cfg, func() error {
//	    _, err := kv.Put(ctx, key, data)
//	    return err
//	})
//
// Presets:
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay
//   - Quick(): 10 attempts, 50ms-1s delay, for startup
//   - Persistent(): 30 attempts, 200ms-10s delay
//
// Retry stops as soon as the context is cancelled, either between attempts or
// during a backoff delay. All functions are safe for concurrent use.
package retry
