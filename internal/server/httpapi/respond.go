package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vmakarov/blogapi/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps sentinel errors to HTTP statuses. Anything unrecognized
// is an infrastructure failure: logged in full, surfaced as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var valErrs validator.ValidationErrors

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrorBadRequest), errors.As(err, &valErrs):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
	case errors.Is(err, common.ErrorEmailTaken):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email already in use"})
	case errors.Is(err, common.ErrorNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeAndValidate unmarshals the request body into dst and runs the
// validator over it.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ErrorBadRequest
	}
	if err := s.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}
