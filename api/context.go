package api

import (
	"context"
)

type keyType string

const adminKey keyType = "admin"

// ctxWithAdmin stores the authenticated admin name
func ctxWithAdmin(ctx context.Context, admin string) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// ctxGetAdmin returns the admin name set by the auth middleware, or "".
func ctxGetAdmin(ctx context.Context) string {
	admin, _ := ctx.Value(adminKey).(string)
	return admin
}
