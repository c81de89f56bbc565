package middleware

import (
	"context"

	"github.com/google/uuid"
)

type userHolderKey struct{}

// userHolder carries the authenticated user ID back out to Logger, which
// wraps Auth and so never sees the derived request context.
type userHolder struct {
	userID string
}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey{}, h)
}

func recordUser(ctx context.Context, id uuid.UUID) {
	if h, ok := ctx.Value(userHolderKey{}).(*userHolder); ok {
		h.userID = id.String()
	}
}
