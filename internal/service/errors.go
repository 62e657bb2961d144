package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/Ragnerd/Kontrib/internal/auth"
	"github.com/Ragnerd/Kontrib/internal/models"
)

// connectError maps domain errors onto Connect codes. Errors that are
// already Connect errors pass through.
func connectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := connect.CodeInternal
	switch {
	case errors.Is(err, models.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, models.ErrConflict):
		code = connect.CodeAlreadyExists
	case errors.Is(err, models.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, models.ErrNotMember):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, models.ErrConcurrencyConflict):
		code = connect.CodeAborted
	case errors.Is(err, models.ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		code = connect.CodeUnauthenticated
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}
	return connect.NewError(code, err)
}

func notFound(what, id string) error {
	return connect.NewError(connect.CodeNotFound, fmt.Errorf("%s %s: %w", what, id, models.ErrNotFound))
}
