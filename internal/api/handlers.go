package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/internal/store"
)

// maxBodySize caps parameter payloads.
const maxBodySize = 1 << 20

// handleFindAllByName handles GET /{node}/{criteria}
func (h *Handler) handleFindAllByName(w http.ResponseWriter, r *http.Request) {
	node := chi.URLParam(r, "node")
	criteria := chi.URLParam(r, "criteria")

	beans, err := h.service.FindAllByName(r.Context(), node, criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, beans, http.StatusOK)
}

// handleValidate handles POST /validate
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParameters(w, r)
	if !ok {
		return
	}

	listing, err := h.service.ValidateRepository(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, ListingResponse{Listing: listing}, http.StatusOK)
}

// handleStatus handles POST /status
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParameters(w, r)
	if !ok {
		return
	}

	up, err := h.service.CheckStatus(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, StatusResponse{Up: up}, http.StatusOK)
}

// handleSubscriptionStatus handles POST /subscription-status
func (h *Handler) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParameters(w, r)
	if !ok {
		return
	}

	status, err := h.service.CheckSubscriptionStatus(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, status, http.StatusOK)
}

// handleLink handles POST /link/{subscription}
func (h *Handler) handleLink(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "subscription")
	subscription, err := strconv.Atoi(raw)
	if err != nil || subscription <= 0 {
		h.writeErrorResponse(w, fmt.Sprintf("invalid subscription %q", raw), http.StatusBadRequest)
		return
	}

	if err := h.service.Link(r.Context(), subscription); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) decodeParameters(w http.ResponseWriter, r *http.Request) (plugin.Parameters, bool) {
	var params plugin.Parameters

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(&params); err != nil {
		h.writeErrorResponse(w, "request body must be a JSON object of string parameters", http.StatusBadRequest)
		return nil, false
	}
	if params == nil {
		params = plugin.Parameters{}
	}
	return params, true
}

// writeError maps plugin and store errors to HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := plugin.AsValidationError(err); ok {
		h.writeJSON(w, ValidationResponse{Field: verr.Field, Code: verr.Code, Value: verr.Value}, http.StatusBadRequest)
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		h.writeErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	}

	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	h.writeErrorResponse(w, "internal error", http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	h.writeJSON(w, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}, statusCode)
}
