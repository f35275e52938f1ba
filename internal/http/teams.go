package httpserver

import (
	"net/http"
	"strings"

	"github.com/Clark-Hu/scouting-api/internal/auth"
)

type teamCreateRequest struct {
	Name string `json:"nome" validate:"required,max=120"`
}

type teamResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type teamListResponse struct {
	OK    bool           `json:"ok"`
	Total int            `json:"total"`
	Teams []teamResponse `json:"times"`
}

type teamEnvelope struct {
	OK   bool         `json:"ok"`
	Team teamResponse `json:"time"`
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.repo.Teams.List(r.Context())
	if err != nil {
		s.logger.Error("list teams failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao listar times")
		return
	}
	items := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamResponse{ID: t.ID, Name: t.Name})
	}
	s.respondJSON(w, http.StatusOK, teamListResponse{OK: true, Total: len(items), Teams: items})
}

// handleCreateTeam is find-or-create: posting an existing name returns it.
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	if auth.ObserverIDFromContext(r.Context()) == 0 {
		s.respondFailure(w, http.StatusUnauthorized, reasonUnauthenticated, "Faça login como olheiro para continuar")
		return
	}

	var req teamCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, decodeErrorMessage(err))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, validationMessage(err))
		return
	}

	team, err := s.repo.Teams.FindOrCreate(r.Context(), req.Name)
	if err != nil {
		s.logger.Error("create team failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao cadastrar time")
		return
	}
	s.respondJSON(w, http.StatusOK, teamEnvelope{OK: true, Team: teamResponse{ID: team.ID, Name: team.Name}})
}
