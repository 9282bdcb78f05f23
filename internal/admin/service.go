// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package admin authenticates administrators and provisions their accounts.
package admin // import "github.com/toeirei/quizmaster/internal/admin"

import (
	"context"
	"fmt"
	"strings"

	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/model"
	"github.com/toeirei/quizmaster/internal/security"
	"github.com/toeirei/quizmaster/internal/session"
)

// Service owns every write to the admins table.
type Service struct {
	store db.AdminStore
}

var _ session.IdentityResolver = (*Service)(nil)

// NewService returns a Service backed by store.
func NewService(store db.AdminStore) *Service {
	return &Service{store: store}
}

// PasswordHash returns the stored digest for plaintext.
func (s *Service) PasswordHash(plaintext security.Secret) string {
	return security.PasswordHash(plaintext)
}

// Verify reports whether plaintext matches a's stored hash.
func (s *Service) Verify(a model.Admin, plaintext security.Secret) bool {
	return security.VerifyPassword(a.PasswordHash, plaintext)
}

// Bootstrap makes sure an admin with email exists. Running it again, or
// racing another process doing the same, leaves exactly one account.
func (s *Service) Bootstrap(ctx context.Context, email string, password security.Secret) error {
	email = strings.TrimSpace(email)
	if email == "" || password.Empty() {
		return fmt.Errorf("bootstrap admin: %w", model.ErrContentRuleViolation)
	}
	existing, err := s.store.FindAdminByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if existing != nil {
		logging.Debugf("admin: bootstrap account %s already present", email)
		return nil
	}
	if _, err := s.store.InsertAdmin(ctx, email, s.PasswordHash(password)); err != nil {
		if db.OutcomeOf(err) == db.OutcomeUniqueViolation {
			return nil
		}
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logging.Infof("admin: created bootstrap account %s", email)
	return nil
}

// Create provisions a new admin account.
func (s *Service) Create(ctx context.Context, email string, password security.Secret) (model.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password.Empty() {
		return model.Admin{}, model.ErrContentRuleViolation
	}
	a, err := s.store.InsertAdmin(ctx, email, s.PasswordHash(password))
	if err != nil {
		if db.OutcomeOf(err) == db.OutcomeUniqueViolation {
			return model.Admin{}, model.ErrDuplicateContent
		}
		return model.Admin{}, fmt.Errorf("create admin: %w", err)
	}
	a.PasswordHash = ""
	return a, nil
}

// Login checks the credentials and returns the admin without its hash.
// Unknown emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email string, password security.Secret) (model.Admin, error) {
	a, err := s.store.FindAdminByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return model.Admin{}, fmt.Errorf("login: %w", err)
	}
	if a == nil || !s.Verify(*a, password) {
		return model.Admin{}, model.ErrAuthenticationFailed
	}
	a.PasswordHash = ""
	return *a, nil
}

// CurrentIdentity rebuilds the admin bound into data, or nil when the
// session carries no usable identity.
func (s *Service) CurrentIdentity(data session.Data) *model.Admin {
	c := data.Admin
	if c == nil || c.ID <= 0 || c.Email == "" {
		return nil
	}
	return &model.Admin{ID: c.ID, Email: c.Email}
}

// List returns every admin without password hashes.
func (s *Service) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.store.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Teardown deletes every admin account.
func (s *Service) Teardown(ctx context.Context) error {
	if err := s.store.DeleteAllAdmins(ctx); err != nil {
		return fmt.Errorf("delete admins: %w", err)
	}
	return nil
}

