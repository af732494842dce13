// Package http exposes the guard command surface as local JSON endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/SteamGuardKeeper/internal/guard"
	"github.com/atinyakov/SteamGuardKeeper/internal/models"
	"github.com/atinyakov/SteamGuardKeeper/internal/storage"
	"github.com/go-chi/chi/v5"
)

// GuardService defines the command operations required by CommandHandler.
type GuardService interface {
	// CurrentTime returns the current Unix time in seconds.
	CurrentTime() uint64
	// GenerateCode returns the code for a secret at time at, or now when at is nil.
	GenerateCode(sharedSecret string, at *uint64) (string, error)
	// Secrets lists the stored secrets.
	Secrets() []models.Secret
	// AddSecret validates and stores a secret.
	AddSecret(ctx context.Context, name, sharedSecret string) ([]models.Secret, error)
	// DeleteSecret removes the secret at index if present.
	DeleteSecret(ctx context.Context, index uint64) ([]models.Secret, error)
	// Codes returns the current code of every stored secret.
	Codes() []models.AccountCode
}

// CommandHandler handles the command endpoints.
type CommandHandler struct {
	GuardService GuardService
}

// CodeRequest is the body of POST /api/code.
type CodeRequest struct {
	SharedSecret string  `json:"shared_secret"`
	Time         *uint64 `json:"time,omitempty"`
}

// CodeResponse is returned by POST /api/code.
type CodeResponse struct {
	Code string `json:"code"`
	// Remaining is the number of seconds the code stays valid.
	Remaining uint64 `json:"remaining"`
}

// AddSecretRequest is the body of POST /api/secrets.
type AddSecretRequest struct {
	Name         string `json:"name"`
	SharedSecret string `json:"shared_secret"`
}

// CurrentTime handles GET /api/time.
func (h *CommandHandler) CurrentTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]uint64{"time": h.GuardService.CurrentTime()})
}

// GenerateCode handles POST /api/code. Generation failures are reported as
// 400 with the error message as body.
func (h *CommandHandler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	var req CodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	// one clock read so code and remaining describe the same window
	at := h.GuardService.CurrentTime()
	if req.Time != nil {
		at = *req.Time
	}

	code, err := h.GuardService.GenerateCode(req.SharedSecret, &at)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, CodeResponse{Code: code, Remaining: guard.SecondsRemaining(at)})
}

// Secrets handles GET /api/secrets.
func (h *CommandHandler) Secrets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.GuardService.Secrets())
}

// AddSecret handles POST /api/secrets and responds with the updated list.
// A secret that cannot produce a code is rejected with 400.
func (h *CommandHandler) AddSecret(w http.ResponseWriter, r *http.Request) {
	var req AddSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	secrets, err := h.GuardService.AddSecret(r.Context(), req.Name, req.SharedSecret)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrInvalidSecret) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, secrets)
}

// DeleteSecret handles DELETE /api/secrets/{index}. An index past the end of
// the list leaves it unchanged.
func (h *CommandHandler) DeleteSecret(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.ParseUint(chi.URLParam(r, "index"), 10, 64)
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	secrets, err := h.GuardService.DeleteSecret(r.Context(), index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, secrets)
}

// Codes handles GET /api/codes.
func (h *CommandHandler) Codes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.GuardService.Codes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
