package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cybergod-duck/rallyspeech/internal/config"
	"github.com/cybergod-duck/rallyspeech/internal/provider"
	"github.com/cybergod-duck/rallyspeech/internal/speech"
)

// Performer runs the speech pipeline for one prompt.
type Performer interface {
	Perform(ctx context.Context, prompt string) (*speech.Performance, error)
}

type SpeechHandler struct {
	svc Performer
	cfg *config.Config
}

func NewSpeechHandler(svc Performer, cfg *config.Config) *SpeechHandler {
	return &SpeechHandler{svc: svc, cfg: cfg}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Audios     []string `json:"audios"`
	Transcript string   `json:"transcript"`
}

// Generate handles POST /api/generate.
func (h *SpeechHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		MethodNotAllowed(w, r)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, speech.ErrInvalidInput.Error())
		return
	}

	if err := h.cfg.Validate(); err != nil {
		slog.Error("speech request rejected", "request_id", chimiddleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, speech.ErrMissingConfiguration.Error())
		return
	}

	perf, err := h.svc.Perform(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("error generating speech", "request_id", chimiddleware.GetReqID(r.Context()), "error", err)
		writeError(w, statusFor(err), messageFor(err))
		return
	}

	audios := make([]string, len(perf.Audios))
	for i, a := range perf.Audios {
		audios[i] = base64.StdEncoding.EncodeToString(a)
	}

	writeJSON(w, http.StatusOK, generateResponse{Audios: audios, Transcript: perf.Transcript})
}

func statusFor(err error) int {
	if errors.Is(err, speech.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// messageFor strips pipeline context so clients see the underlying failure.
func messageFor(err error) string {
	if pe, ok := provider.AsError(err); ok {
		return pe.Error()
	}
	for _, known := range []error{
		speech.ErrInvalidInput,
		speech.ErrMissingConfiguration,
		speech.ErrEmptyGeneration,
		speech.ErrEmptySpeech,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
