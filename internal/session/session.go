// Package session carries the authenticated caller through the request.
// Services receive a Session as an explicit parameter; nothing reads caller
// identity from ambient state.
package session

import "context"

const (
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// Session identifies the current caller. UserID scopes expense ownership,
// UserName stamps the audit trail, Role gates manager-only transitions.
type Session struct {
	UserID   int64
	UserName string
	Role     string
}

func (s *Session) IsManager() bool {
	return s.Role == RoleManager
}

type ctxKey struct{}

// IntoContext is used by the auth middleware; handlers pull the session back
// out and hand it to services as a plain argument.
func IntoContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
