package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/leads-enricher/internal/auth"
	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/service"
)

func newAuthHandler(t *testing.T, operator config.OperatorConfig) (*AuthHandler, *auth.JWTManager) {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", 0)
	return NewAuthHandler(service.NewAuthService(operator, jwtManager)), jwtManager
}

func TestAuthHandler_Login(t *testing.T) {
	e := echo.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	operator := config.OperatorConfig{Email: "ops@example.com", PasswordHash: string(hashed)}

	t.Run("invalid payload", func(t *testing.T) {
		c, rec := postJSON(e, "/auth/login", "{")
		h, _ := newAuthHandler(t, operator)
		_ = h.Login(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		c, rec := postJSON(e, "/auth/login", `{"email":" ","password":""}`)
		h, _ := newAuthHandler(t, operator)
		_ = h.Login(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		c, rec := postJSON(e, "/auth/login", `{"email":"ops@example.com","password":"wrong"}`)
		h, _ := newAuthHandler(t, operator)
		_ = h.Login(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("operator not configured", func(t *testing.T) {
		c, rec := postJSON(e, "/auth/login", `{"email":"ops@example.com","password":"secret"}`)
		h, _ := newAuthHandler(t, config.OperatorConfig{})
		_ = h.Login(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		c, rec := postJSON(e, "/auth/login", `{"email":"Ops@Example.com","password":"secret"}`)
		h, manager := newAuthHandler(t, operator)
		_ = h.Login(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload struct {
			Data dto.LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		claims, err := manager.ParseToken(payload.Data.AccessToken)
		if err != nil {
			t.Fatalf("expected a valid token: %v", err)
		}
		if claims.Role != service.OperatorRole || claims.Email != "ops@example.com" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})
}
