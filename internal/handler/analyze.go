package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/moodlens/emotion-service/internal/models"
)

// uploads larger than this are rejected before reaching the model backends
const maxUploadBytes = 25 << 20

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze classifies the emotions of a text payload
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	emotions, err := h.svc.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{Emotions: emotions})
}

// AnalyzeSpeech transcribes an uploaded audio file and classifies the
// transcript
func (h *Handler) AnalyzeSpeech(w http.ResponseWriter, r *http.Request) {
	file, _, err := h.formFile(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "audio file is required"})
		return
	}
	defer file.Close()

	text, emotions, err := h.svc.AnalyzeSpeech(r.Context(), file)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SpeechAnalyzeResponse{
		TranscribedText: text,
		Emotions:        emotions,
	})
}

// AnalyzeImage detects a face in an uploaded image and returns its
// emotion scores
func (h *Handler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	file, filename, err := h.formFile(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image file is required"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read image"})
		return
	}

	emotions, err := h.svc.AnalyzeImage(r.Context(), imageData, filename)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{Emotions: emotions})
}

// formFile extracts the single "file" field from a multipart upload,
// rejecting bodies larger than maxUploadBytes.
func (h *Handler) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}
