package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Clark-Hu/scouting-api/internal/auth"
	"github.com/Clark-Hu/scouting-api/internal/repository"
)

type registerRequest struct {
	Name     string `json:"nome" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

type registerResponse struct {
	OK         bool   `json:"ok"`
	Msg        string `json:"msg"`
	ObserverID int64  `json:"id_olheiro"`
}

type loginResponse struct {
	OK         bool   `json:"ok"`
	Token      string `json:"token"`
	ObserverID int64  `json:"id_olheiro"`
	Name       string `json:"nome"`
}

func (s *Server) handleRegisterObserver(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, decodeErrorMessage(err))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Struct(req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, validationMessage(err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hash password failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao cadastrar olheiro")
		return
	}

	observer, err := s.repo.Observers.Create(r.Context(), repository.ObserverCreateParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.respondFailure(w, http.StatusConflict, reasonConflict, "Email já cadastrado")
			return
		}
		s.logger.Error("create observer failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao cadastrar olheiro")
		return
	}

	s.respondJSON(w, http.StatusCreated, registerResponse{OK: true, Msg: "Olheiro cadastrado", ObserverID: observer.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, decodeErrorMessage(err))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Struct(req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, validationMessage(err))
		return
	}

	observer, err := s.repo.Observers.GetByEmail(r.Context(), req.Email)
	if err == nil {
		err = auth.CheckPassword(observer.PasswordHash, req.Password)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, auth.ErrPasswordMismatch) {
			s.respondFailure(w, http.StatusUnauthorized, reasonUnauthenticated, "Email ou senha inválidos")
			return
		}
		s.logger.Error("login failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao autenticar")
		return
	}

	token, err := s.tokens.Issue(observer.ID)
	if err != nil {
		s.logger.Error("issue token failed", "observer_id", observer.ID, "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao autenticar")
		return
	}
	s.respondJSON(w, http.StatusOK, loginResponse{OK: true, Token: token, ObserverID: observer.ID, Name: observer.Name})
}
