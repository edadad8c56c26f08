package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/clubledger/internal/auth"
	"github.com/mmynk/clubledger/internal/reconcile"
	"github.com/mmynk/clubledger/internal/storage"
)

// ErrOutOfScope is returned when an athlete does not belong to the event's organization.
var ErrOutOfScope = errors.New("athlete does not belong to this event")

// toConnectError maps domain errors onto Connect codes. Unknown errors are internal.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, reconcile.ErrMissingRequiredItems):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, ErrOutOfScope):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
