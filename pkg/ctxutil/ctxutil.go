// Package ctxutil carries the calling operator and the request id through
// request contexts.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// adminRole mirrors domain.UserRoleAdmin; pkg must not import internal.
const adminRole = "admin"

// Operator is the authenticated caller of a request.
type Operator struct {
	ID   uuid.UUID
	Role string
}

type (
	operatorKey  struct{}
	requestIDKey struct{}
)

func operatorFrom(ctx context.Context) Operator {
	op, _ := ctx.Value(operatorKey{}).(Operator)
	return op
}

// OperatorFromCtx returns the caller; ok is false for anonymous requests.
func OperatorFromCtx(ctx context.Context) (Operator, bool) {
	op := operatorFrom(ctx)
	return op, op.ID != uuid.Nil
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	op := operatorFrom(ctx)
	op.ID = id
	return context.WithValue(ctx, operatorKey{}, op)
}

// UserIDFromCtx reports false when no id, or uuid.Nil, was stored.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	op, ok := OperatorFromCtx(ctx)
	return op.ID, ok
}

func WithUserRole(ctx context.Context, role string) context.Context {
	op := operatorFrom(ctx)
	op.Role = role
	return context.WithValue(ctx, operatorKey{}, op)
}

func UserRoleFromCtx(ctx context.Context) string {
	return operatorFrom(ctx).Role
}

func IsAdminCtx(ctx context.Context) bool {
	return operatorFrom(ctx).Role == adminRole
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns "" outside an HTTP request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
