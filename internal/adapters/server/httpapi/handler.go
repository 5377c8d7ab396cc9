// Package httpapi provides the REST HTTP adapter for the server surfaces.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kombo/internal/adapters/server/common"
)

// maxRequestBodyBytes limits decoded JSON payload size for fail-closed request handling.
const maxRequestBodyBytes int64 = 1 << 20

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	combos common.ComboService
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs one HTTP API adapter from the combo service.
func NewHandler(combos common.ComboService) *Handler {
	return &Handler{combos: combos}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.Path)
	switch {
	case path == "combos":
		switch r.Method {
		case http.MethodGet:
			h.handleListCombos(w, r)
		case http.MethodPost:
			h.handleCreateCombo(w, r)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	case path == "render":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		h.handleRenderCombo(w, r)
	case strings.HasPrefix(path, "combos/"):
		id := strings.TrimPrefix(path, "combos/")
		if id == "" || strings.Contains(id, "/") {
			writeNotFound(w)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGetCombo(w, r, id)
		case http.MethodPut:
			h.handleUpdateCombo(w, r, id)
		case http.MethodDelete:
			h.handleDeleteCombo(w, r, id)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	default:
		writeNotFound(w)
	}
}

// handleListCombos serves GET `/combos`.
func (h *Handler) handleListCombos(w http.ResponseWriter, r *http.Request) {
	combos, err := h.combos.ListCombos(r.Context())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"combos": combos})
}

// handleCreateCombo serves POST `/combos`.
func (h *Handler) handleCreateCombo(w http.ResponseWriter, r *http.Request) {
	var req common.CreateComboRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	combo, err := h.combos.CreateCombo(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, combo)
}

// handleGetCombo serves GET `/combos/{id}`.
func (h *Handler) handleGetCombo(w http.ResponseWriter, r *http.Request, id string) {
	combo, err := h.combos.GetCombo(r.Context(), id)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, combo)
}

// handleUpdateCombo serves PUT `/combos/{id}`.
func (h *Handler) handleUpdateCombo(w http.ResponseWriter, r *http.Request, id string) {
	var req common.UpdateComboRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	combo, err := h.combos.UpdateCombo(r.Context(), id, req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, combo)
}

// handleDeleteCombo serves DELETE `/combos/{id}`.
func (h *Handler) handleDeleteCombo(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.combos.DeleteCombo(r.Context(), id); err != nil {
		writeErrorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderCombo serves GET `/render?keyword=...`.
func (h *Handler) handleRenderCombo(w http.ResponseWriter, r *http.Request) {
	result, err := h.combos.RenderCombo(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeJSONBody decodes one bounded JSON request body, writing the error
// response itself when decoding fails.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: fmt.Sprintf("decode request body: %v", err),
		})
		return false
	}
	return true
}

// writeErrorFrom maps service errors onto HTTP status codes.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: err.Error()})
	case errors.Is(err, common.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: err.Error()})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{Code: "internal", Message: err.Error()})
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: "endpoint not found"})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

func writeJSONError(w http.ResponseWriter, status int, apiErr APIError) {
	writeJSON(w, status, ErrorEnvelope{Error: apiErr})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// normalizePath strips the mount prefix slashes from one request path.
func normalizePath(path string) string {
	return strings.Trim(path, "/")
}
