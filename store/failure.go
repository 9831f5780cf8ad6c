package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/nats-io/nats.go"
	"github.com/ncruces/go-sqlite3"
)

// backendFailure attaches the storage sentinel matching a backend error.
// A full database is fatal; everything else may clear up on retry.
func backendFailure(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, sqlite3.FULL) {
		return errors.WrapFatal(fmt.Errorf("%w: %w", errors.ErrStorageFull, err), component, method, action)
	}
	sentinel := errors.ErrStorageUnavailable
	switch {
	case stderrors.Is(err, nats.ErrNoServers):
		sentinel = errors.ErrNoConnection
	case stderrors.Is(err, nats.ErrTimeout), stderrors.Is(err, context.DeadlineExceeded):
		sentinel = errors.ErrConnectionTimeout
	case stderrors.Is(err, nats.ErrConnectionClosed), stderrors.Is(err, nats.ErrDisconnected),
		stderrors.Is(err, nats.ErrConnectionDraining):
		sentinel = errors.ErrConnectionLost
	}
	return errors.WrapTransient(fmt.Errorf("%w: %w", sentinel, err), component, method, action)
}
