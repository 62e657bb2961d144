package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/Ragnerd/Kontrib/internal/auth"
	"github.com/Ragnerd/Kontrib/internal/middleware"
	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

var (
	errNotGroupAdmin = errors.New("only the group admin can do this")
	errNotInGroup    = errors.New("only members and the admin of a group can see it")
)

// access answers authorization questions about the caller on the context.
type access struct {
	store storage.Reader
}

func callerID(ctx context.Context) (string, error) {
	id := middleware.GetUserID(ctx)
	if id == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return id, nil
}

// group loads a group or fails with NotFound.
func (a access) group(ctx context.Context, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, connectError(models.Invalid("group_id", "is required"))
	}
	group, err := a.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, connectError(err)
	}
	if group == nil {
		return nil, notFound("group", groupID)
	}
	return group, nil
}

// adminOf loads a group the caller administers.
func (a access) adminOf(ctx context.Context, groupID string) (*models.Group, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	group, err := a.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.AdminID != caller {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotGroupAdmin)
	}
	return group, nil
}

// readable loads a group the caller administers or belongs to.
func (a access) readable(ctx context.Context, groupID string) (*models.Group, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	group, err := a.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.AdminID == caller {
		return group, nil
	}

	membership, err := a.store.GetMembershipByGroupAndUser(ctx, groupID, caller)
	if err != nil {
		return nil, connectError(fmt.Errorf("failed to check membership: %w", err))
	}
	if membership == nil {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotInGroup)
	}
	return group, nil
}
