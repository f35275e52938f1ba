package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxRequestBody = 1 << 20 // 1 MiB

// Failure reasons carried in the "reason" field.
const (
	reasonValidation      = "validation"
	reasonNotFound        = "not_found"
	reasonUnauthenticated = "unauthenticated"
	reasonConflict        = "conflict"
	reasonInternal        = "internal"
)

type failureResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
	Msg    string `json:"msg"`
}

type okResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Warn("failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondFailure(w http.ResponseWriter, status int, reason, msg string) {
	s.respondJSON(w, status, failureResponse{OK: false, Reason: reason, Msg: msg})
}

// decodeErrorMessage turns a JSON decoding error into a caller-facing message.
func decodeErrorMessage(err error) string {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError), errors.Is(err, io.ErrUnexpectedEOF):
		return "JSON malformado"
	case errors.As(err, &typeError):
		return fmt.Sprintf("Valor inválido para o campo %s", typeError.Field)
	case errors.Is(err, io.EOF):
		return "O corpo da requisição não pode ser vazio"
	case errors.As(err, &maxBytesError):
		return "Corpo da requisição muito grande"
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return "Campo desconhecido: " + strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
	default:
		return "Não foi possível ler o corpo da requisição"
	}
}

// validationMessage reports the first failing field of a validator error.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Dados inválidos"
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " é obrigatório"
	case "email":
		return fe.Field() + " deve ser um email válido"
	case "min":
		return fmt.Sprintf("%s deve ter pelo menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", fe.Field(), fe.Param())
	default:
		return fe.Field() + " inválido"
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

func normalizeStringPtr(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}
