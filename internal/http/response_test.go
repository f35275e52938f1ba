package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Clark-Hu/scouting-api/internal/validation"
)

func TestDecodeJSONBodyMessages(t *testing.T) {
	type payload struct {
		Name string `json:"nome"`
		Age  int    `json:"idade"`
	}
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "O corpo da requisição não pode ser vazio"},
		{"syntax", "{nome}", "JSON malformado"},
		{"truncated", `{"nome":"a"`, "JSON malformado"},
		{"type", `{"idade":"dez"}`, "Valor inválido para o campo idade"},
		{"unknown", `{"apelido":"x"}`, "Campo desconhecido: apelido"},
		{"too large", `{"nome":"` + strings.Repeat("a", maxRequestBody) + `"}`, "Corpo da requisição muito grande"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst payload
			err := decodeJSONBody(httptest.NewRecorder(), req, &dst)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := decodeErrorMessage(err); got != tc.want {
				t.Fatalf("message = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeErrorMessageFallback(t *testing.T) {
	if got := decodeErrorMessage(errors.New("boom")); got != "Não foi possível ler o corpo da requisição" {
		t.Fatalf("fallback = %q", got)
	}
	if got := decodeErrorMessage(io.EOF); got != "O corpo da requisição não pode ser vazio" {
		t.Fatalf("eof = %q", got)
	}
}

func TestValidationMessage(t *testing.T) {
	v := validation.New()
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"required", registerRequest{Email: "a@b.com", Password: "123456"}, "nome é obrigatório"},
		{"email", registerRequest{Name: "A", Email: "nope", Password: "123456"}, "email deve ser um email válido"},
		{"min", registerRequest{Name: "A", Email: "a@b.com", Password: "123"}, "senha deve ter pelo menos 6 caracteres"},
		{"max", teamCreateRequest{Name: strings.Repeat("x", 121)}, "nome deve ter no máximo 120 caracteres"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validationMessage(v.Struct(tc.in)); got != tc.want {
				t.Fatalf("message = %q, want %q", got, tc.want)
			}
		})
	}
	if got := validationMessage(errors.New("other")); got != "Dados inválidos" {
		t.Fatalf("non-validator error message = %q", got)
	}
}

func TestRespondFailureShape(t *testing.T) {
	srv := New(testConfig(), nil, nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	srv.respondFailure(rec, http.StatusConflict, reasonConflict, "duplicado")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != false || body["reason"] != reasonConflict || body["msg"] != "duplicado" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestNormalizeStringPtr(t *testing.T) {
	if normalizeStringPtr(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	blank := "   "
	if normalizeStringPtr(&blank) != nil {
		t.Fatalf("blank should become nil")
	}
	val := " Santos "
	if got := normalizeStringPtr(&val); got == nil || *got != "Santos" {
		t.Fatalf("got %v, want Santos", got)
	}
}
