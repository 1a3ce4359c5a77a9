package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wedloom/wedloom-api/internal/domain/allowlist"
	"github.com/wedloom/wedloom-api/internal/pkg/jwt"
	"github.com/wedloom/wedloom-api/internal/pkg/password"
)

type fakeAllowlist struct {
	users []*allowlist.AllowedUser
	err   error
}

func (r *fakeAllowlist) Upsert(_ context.Context, _ *allowlist.AllowedUser) error { return nil }
func (r *fakeAllowlist) GetByPhone(_ context.Context, _ string) (*allowlist.AllowedUser, error) {
	return nil, nil
}
func (r *fakeAllowlist) List(_ context.Context) ([]*allowlist.AllowedUser, error) {
	return r.users, r.err
}
func (r *fakeAllowlist) Delete(_ context.Context, _ string) error { return nil }

func newLoginHandler(t *testing.T, plaintext string) *Handler {
	t.Helper()
	hash, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	jwtService := jwt.NewService("test-secret", 15*time.Minute)
	return NewHandler(hash, jwtService, &fakeAllowlist{})
}

func postLogin(h *Handler, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(data))
	h.Login(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	h := newLoginHandler(t, "correct-horse-battery")

	t.Run("valid password issues token", func(t *testing.T) {
		rec := postLogin(h, LoginRequest{Password: "correct-horse-battery"})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var envelope struct {
			Data LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if envelope.Data.AccessToken == "" {
			t.Fatal("expected access token")
		}

		claims, err := jwt.NewService("test-secret", 15*time.Minute).ValidateAccessToken(envelope.Data.AccessToken)
		if err != nil {
			t.Fatalf("validate issued token: %v", err)
		}
		if claims.Role != "admin" {
			t.Fatalf("role = %q, want admin", claims.Role)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		rec := postLogin(h, LoginRequest{Password: "not-the-password"})

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("missing password rejected", func(t *testing.T) {
		rec := postLogin(h, LoginRequest{})

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("unconfigured hash rejects everything", func(t *testing.T) {
		bare := NewHandler("", jwt.NewService("test-secret", 15*time.Minute), &fakeAllowlist{})
		rec := postLogin(bare, LoginRequest{Password: "correct-horse-battery"})

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
