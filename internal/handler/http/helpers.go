package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/tasty-ordering/internal/menu"
	"github.com/vasiliy-maslov/tasty-ordering/internal/order"
)

// maxBodyBytes bounds request bodies; menu images arrive inline as base64.
const maxBodyBytes = 16 << 20

var (
	errInvalidID    = errors.New("invalid id parameter")
	errTrailingData = errors.New("request body must contain a single JSON value")
)

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Detail: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondWithStatus(w http.ResponseWriter, status string) {
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: status})
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrEmptyOrder), errors.Is(err, order.ErrInvalidItem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseID(r *http.Request) (int64, error) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("id", idParam).Msg("Failed to parse id parameter from URL")
		return 0, errInvalidID
	}
	return id, nil
}

// decodeJSON reads exactly one JSON value from the request body into dst.
// Unknown fields are ignored: the storefront client sends whole objects (e.g.
// a menu item with its id) back.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Failed to decode request body")
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		hlog.FromRequest(r).Warn().Err(err).Msg("Request body has data after the JSON value")
		return errTrailingData
	}
	return nil
}
