package upload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/wedloom/wedloom-api/internal/pkg/response"
	"github.com/wedloom/wedloom-api/internal/pkg/validator"
)

// Handler handles upload HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates upload handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /uploads. Accepts either a multipart form with a
// "file" part or a JSON body with a base64 "data" field.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		raw     []byte
		eventID string
		userID  string
	)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file too large")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "Missing file")
			return
		}
		defer file.Close()

		raw, err = io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
		if err != nil {
			response.BadRequest(w, "Failed to read file")
			return
		}
		eventID = r.FormValue("event_id")
		userID = r.FormValue("user_id")

		if err := validator.ValidateVar(eventID, "required,slug"); err != nil {
			response.BadRequest(w, "Invalid event_id")
			return
		}
	} else {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
		if errs := validator.Validate(&req); errs != nil {
			response.ValidationError(w, errs)
			return
		}

		// Accept both bare base64 and data-URI payloads.
		data := req.Data
		if idx := strings.Index(data, ";base64,"); idx >= 0 {
			data = data[idx+len(";base64,"):]
		}
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			response.BadRequest(w, "Invalid base64 payload")
			return
		}
		raw = decoded
		eventID = req.EventID
		userID = req.UserID
	}

	d, err := h.service.Upload(r.Context(), raw, eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.NotFound(w, "Event not found")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file too large")
		case errors.Is(err, ErrInvalidImage):
			response.BadRequest(w, "Payload is not a valid image")
		case errors.Is(err, ErrRateLimited):
			response.TooManyRequests(w, "Too many uploads, try again in a minute")
		default:
			// Surface the adapter's failure text so clients can render
			// an inline error.
			response.Error(w, http.StatusBadGateway, "UPLOAD_FAILED", err.Error())
		}
		return
	}

	response.Created(w, d)
}
