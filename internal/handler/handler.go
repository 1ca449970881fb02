package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moodlens/emotion-service/internal/audio"
	"github.com/moodlens/emotion-service/internal/inference"
	"github.com/moodlens/emotion-service/internal/service"
	"github.com/moodlens/emotion-service/internal/store"
	"github.com/moodlens/emotion-service/internal/token"
	"github.com/sirupsen/logrus"
)

// Handler translates HTTP requests into service calls and errors into
// JSON responses.
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// statusTable maps error kinds to HTTP statuses. Anything not listed is an
// internal error.
var statusTable = []struct {
	kind   error
	status int
}{
	{store.ErrAlreadyExists, http.StatusBadRequest},
	{service.ErrEmptyInput, http.StatusBadRequest},
	{audio.ErrUnsupportedAudio, http.StatusBadRequest},
	{inference.ErrSpeechNotRecognized, http.StatusBadRequest},
	{inference.ErrNoFaceDetected, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{token.ErrInvalidToken, http.StatusUnauthorized},
	{store.ErrNotFound, http.StatusNotFound},
	{service.ErrInferenceTimeout, http.StatusGatewayTimeout},
}

// respondError maps err to a status and writes the JSON error body.
// Unrecognized errors are logged and redacted to a generic 500 message.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	for _, entry := range statusTable {
		if errors.Is(err, entry.kind) {
			writeJSON(w, entry.status, errorResponse{Error: entry.kind.Error()})
			return
		}
	}
	h.log.Errorf("Internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
