package admin

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/domain/allowlist"
	"github.com/wedloom/wedloom-api/internal/pkg/jwt"
	"github.com/wedloom/wedloom-api/internal/pkg/password"
	"github.com/wedloom/wedloom-api/internal/pkg/response"
	"github.com/wedloom/wedloom-api/internal/pkg/validator"
)

// Handler handles admin HTTP requests
type Handler struct {
	passwordHash string
	jwtService   *jwt.Service
	allowlist    allowlist.Repository
}

// NewHandler creates admin handler
func NewHandler(passwordHash string, jwtService *jwt.Service, allowlistRepo allowlist.Repository) *Handler {
	return &Handler{
		passwordHash: passwordHash,
		jwtService:   jwtService,
		allowlist:    allowlistRepo,
	}
}

// Login handles POST /admin/login. The admin password hash comes from
// configuration; provider-backed auth is not part of this surface.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if h.passwordHash == "" {
		log.Error().Msg("Admin login attempted with no password hash configured")
		response.Unauthorized(w, "Admin login is not configured")
		return
	}

	if !password.Verify(req.Password, h.passwordHash) {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	phone := req.Phone
	if phone == "" {
		phone = "admin"
	}
	token, err := h.jwtService.GenerateAccessToken(phone, "admin")
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue admin token")
		response.InternalError(w)
		return
	}

	response.OK(w, &LoginResponse{AccessToken: token})
}

// ListAllowed handles GET /admin/allowlist
func (h *Handler) ListAllowed(w http.ResponseWriter, r *http.Request) {
	users, err := h.allowlist.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list allowed users")
		response.InternalError(w)
		return
	}
	if users == nil {
		users = []*allowlist.AllowedUser{}
	}
	response.OK(w, users)
}
