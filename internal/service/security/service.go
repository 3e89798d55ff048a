// Package security implements the role gate: a free employee role and an
// administrator role unlocked by a shared numeric code.
package security

import (
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	"github.com/mamadbah2/agripoulet/internal/store"
)

// Service issues session tokens and rotates the shared admin secret.
type Service struct {
	store  *store.Store
	tokens *auth.JWTManager
	logger *zap.Logger
}

// NewService wires the security service.
func NewService(st *store.Store, tokens *auth.JWTManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, tokens: tokens, logger: logger}
}

// Login returns a session token for the requested role. The employee role
// needs no credential; the administrator role requires the shared code.
func (s *Service) Login(role auth.Role, code string) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q: %w", role, apperrors.ErrInvalid)
	}

	if role == auth.RoleAdmin {
		var hash string
		s.store.View(func(doc *models.Document) {
			hash = doc.Settings.AdminSecretHash
		})
		if !auth.VerifySecret(hash, code) {
			s.logger.Warn("admin login rejected")
			return "", fmt.Errorf("wrong administrator code: %w", apperrors.ErrForbidden)
		}
	}

	token, err := s.tokens.GenerateToken(role)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("session opened", zap.String("role", string(role)))
	return token, nil
}

// UpdateSecret rotates the shared administrator code. The legacy form
// contract applies: at least four characters, digits only.
func (s *Service) UpdateSecret(newCode string) error {
	if len(newCode) < 4 {
		return fmt.Errorf("code must be at least 4 digits: %w", apperrors.ErrInvalid)
	}
	for _, r := range newCode {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("code must contain digits only: %w", apperrors.ErrInvalid)
		}
	}

	hash, err := auth.HashSecret(newCode)
	if err != nil {
		return fmt.Errorf("hash new code: %w", err)
	}

	err = s.store.Update(func(doc *models.Document) error {
		doc.Settings.AdminSecretHash = hash
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("administrator code rotated")
	return nil
}
