// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session carries the per-request session payload and gates
// operations that require an authenticated admin.
package session // import "github.com/toeirei/quizmaster/internal/session"

import (
	"context"

	"github.com/toeirei/quizmaster/internal/model"
)

// AdminClaims is the identity bound into a session at login.
type AdminClaims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Data is the session payload. A zero Data has no identity.
type Data struct {
	Admin *AdminClaims `json:"admin,omitempty"`
}

// ForAdmin returns session data identifying a.
func ForAdmin(a model.Admin) Data {
	return Data{Admin: &AdminClaims{ID: a.ID, Email: a.Email}}
}

// RequestContext is passed explicitly to every gated operation.
type RequestContext struct {
	Session Data
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying rc.
func NewContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, or an empty one.
func FromContext(ctx context.Context) RequestContext {
	rc, _ := ctx.Value(ctxKey{}).(RequestContext)
	return rc
}

// IdentityResolver turns session data into an admin, or nil when the
// session carries no valid identity.
type IdentityResolver interface {
	CurrentIdentity(data Data) *model.Admin
}

// IdentityResolverFunc adapts a function to IdentityResolver.
type IdentityResolverFunc func(data Data) *model.Admin

// CurrentIdentity implements IdentityResolver.
func (f IdentityResolverFunc) CurrentIdentity(data Data) *model.Admin { return f(data) }

// Gate authorizes gated operations. It holds no state of its own.
type Gate struct {
	Resolver IdentityResolver
}

// NewGate returns a Gate backed by r.
func NewGate(r IdentityResolver) Gate {
	return Gate{Resolver: r}
}

// Require returns the admin behind rc or model.ErrUnauthorized.
func (g Gate) Require(rc RequestContext) (model.Admin, error) {
	if g.Resolver == nil {
		return model.Admin{}, model.ErrUnauthorized
	}
	a := g.Resolver.CurrentIdentity(rc.Session)
	if a == nil {
		return model.Admin{}, model.ErrUnauthorized
	}
	return *a, nil
}
