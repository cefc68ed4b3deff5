package middleware

import (
	"context"

	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/EATMove/CDT-sub001/internal/session"
)

type adminKey struct{}

type userKey struct{}

func WithAdmin(ctx context.Context, id session.Identity) context.Context {
	return context.WithValue(ctx, adminKey{}, id)
}

func AdminFromContext(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(adminKey{}).(session.Identity)
	return id, ok
}

func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey{}).(*model.User)
	return u, ok && u != nil
}
