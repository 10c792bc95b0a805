package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogapi/app/repositories"
	"blogapi/app/validation"

	"github.com/rs/zerolog"
)

type internalError struct {
	Error string `json:"error"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps service errors onto responses.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, repositories.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, repositories.ErrBlogNotFound):
		// The blog existed during validation but was gone by the write.
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("blog removed while writing post")
		sendJSON(w, http.StatusBadRequest, &validation.Error{
			Errors: []validation.FieldError{validation.Invalid("blogId")},
		})
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		sendJSON(w, http.StatusInternalServerError, internalError{Error: "internal server error"})
	}
}

// decodeInput reads the request body into a T. A body that is not a JSON
// object yields the zero T so that every field fails validation.
func decodeInput[T any](r *http.Request) T {
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("undecodable body")
		var zero T
		return zero
	}
	return in
}
