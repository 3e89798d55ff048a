package security

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	filerepo "github.com/mamadbah2/agripoulet/internal/repository/file"
	"github.com/mamadbah2/agripoulet/internal/store"
)

func newTestService(t *testing.T) (*Service, *auth.JWTManager) {
	t.Helper()

	repo, err := filerepo.New(filepath.Join(t.TempDir(), "doc.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("file repository: %v", err)
	}
	st, err := store.Open(context.Background(), repo, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)

	tokens := auth.NewJWTManager("test-secret", time.Hour, "agripoulet")
	return NewService(st, tokens, zap.NewNop()), tokens
}

func TestEmployeeLoginNeedsNoCode(t *testing.T) {
	svc, tokens := newTestService(t)

	token, err := svc.Login(auth.RoleEmployee, "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != auth.RoleEmployee {
		t.Fatalf("role = %s, want employee", claims.Role)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, tokens := newTestService(t)

	token, err := svc.Login(auth.RoleAdmin, models.DefaultAdminSecret)
	if err != nil {
		t.Fatalf("login with default code: %v", err)
	}
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != auth.RoleAdmin {
		t.Fatalf("role = %s, want admin", claims.Role)
	}

	if _, err := svc.Login(auth.RoleAdmin, "0000"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("wrong code err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Login(auth.Role("owner"), "1234"); !errors.Is(err, apperrors.ErrInvalid) {
		t.Fatalf("unknown role err = %v, want ErrInvalid", err)
	}
}

func TestUpdateSecret(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		code string
	}{
		{"too short", "123"},
		{"letters", "abcd"},
		{"mixed", "12a4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.UpdateSecret(tt.code); !errors.Is(err, apperrors.ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}

	if err := svc.UpdateSecret("98765"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if _, err := svc.Login(auth.RoleAdmin, models.DefaultAdminSecret); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("old code still accepted: %v", err)
	}
	if _, err := svc.Login(auth.RoleAdmin, "98765"); err != nil {
		t.Fatalf("new code rejected: %v", err)
	}
}
