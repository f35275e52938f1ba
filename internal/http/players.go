package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Clark-Hu/scouting-api/internal/auth"
	"github.com/Clark-Hu/scouting-api/internal/domain"
	"github.com/Clark-Hu/scouting-api/internal/repository"
)

type playerCreateRequest struct {
	Name     string  `json:"nome" validate:"required,max=120"`
	Position string  `json:"posicao" validate:"required,max=40"`
	TeamName *string `json:"nome_time" validate:"omitempty,max=120"`
}

type playerResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"nome"`
	Position string  `json:"posicao"`
	TeamID   *int64  `json:"id_time"`
	TeamName *string `json:"nome_time"`
}

type playerEnvelope struct {
	OK     bool           `json:"ok"`
	Player playerResponse `json:"jogador"`
}

type playerListResponse struct {
	OK         bool             `json:"ok"`
	Players    []playerResponse `json:"jogadores"`
	NextCursor *string          `json:"proximo_cursor,omitempty"`
}

type statsResponse struct {
	Games       int `json:"jogos"`
	Goals       int `json:"gols"`
	Assists     int `json:"assistencias"`
	Shots       int `json:"finalizacoes"`
	Tackles     int `json:"desarmes"`
	YellowCards int `json:"cartoes_amarelos"`
	RedCards    int `json:"cartoes_vermelhos"`
	Minutes     int `json:"minutos"`
}

type playerStatsResponse struct {
	OK       bool          `json:"ok"`
	PlayerID int64         `json:"id_jogador"`
	Stats    statsResponse `json:"estatisticas"`
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	filters, err := buildPlayerFilters(r.URL.Query())
	if err != nil {
		s.respondFailure(w, http.StatusBadRequest, reasonValidation, err.Error())
		return
	}

	result, err := s.repo.Players.List(r.Context(), filters)
	if err != nil {
		s.logger.Error("list players failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao listar jogadores")
		return
	}

	items := make([]playerResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toPlayerResponse(p))
	}
	s.respondJSON(w, http.StatusOK, playerListResponse{OK: true, Players: items, NextCursor: result.NextCursor})
}

func buildPlayerFilters(query url.Values) (repository.PlayerListFilters, error) {
	var filters repository.PlayerListFilters

	if q := strings.TrimSpace(query.Get("q")); q != "" {
		filters.Query = &q
	}
	if val := strings.TrimSpace(query.Get("posicao")); val != "" {
		filters.Position = &val
	}
	if val := strings.TrimSpace(query.Get("time")); val != "" {
		filters.Team = &val
	}
	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("limit inválido")
		}
		filters.Limit = limit
	}
	if val := strings.TrimSpace(query.Get("cursor")); val != "" {
		cursor, err := repository.DecodeCursor(val)
		if err != nil {
			return filters, fmt.Errorf("cursor inválido")
		}
		filters.Cursor = cursor
	}
	return filters, nil
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	if auth.ObserverIDFromContext(r.Context()) == 0 {
		s.respondFailure(w, http.StatusUnauthorized, reasonUnauthenticated, "Faça login como olheiro para continuar")
		return
	}

	var req playerCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, decodeErrorMessage(err))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Position = strings.TrimSpace(req.Position)
	req.TeamName = normalizeStringPtr(req.TeamName)
	if err := s.validate.Struct(req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, reasonValidation, validationMessage(err))
		return
	}

	player, err := s.createPlayer(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.respondFailure(w, http.StatusConflict, reasonConflict, "Jogador já cadastrado neste time")
			return
		}
		s.logger.Error("create player failed", "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao cadastrar jogador")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/jogadores/%d", player.ID))
	s.respondJSON(w, http.StatusCreated, playerEnvelope{OK: true, Player: toPlayerResponse(player)})
}

// createPlayer resolves the team by name (find-or-create) and inserts the
// player in the same transaction.
func (s *Server) createPlayer(ctx context.Context, req playerCreateRequest) (domain.Player, error) {
	var player domain.Player
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		params := repository.PlayerCreateParams{Name: req.Name, Position: req.Position}
		if req.TeamName != nil {
			team, err := tx.Teams.FindOrCreate(ctx, *req.TeamName)
			if err != nil {
				return err
			}
			params.TeamID = &team.ID
		}
		var err error
		player, err = tx.Players.Create(ctx, params)
		return err
	})
	return player, err
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		s.respondFailure(w, http.StatusBadRequest, reasonValidation, "id inválido")
		return
	}

	player, err := s.repo.Players.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondFailure(w, http.StatusNotFound, reasonNotFound, "Jogador não encontrado")
			return
		}
		s.logger.Error("get player failed", "player_id", id, "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao buscar jogador")
		return
	}
	s.respondJSON(w, http.StatusOK, playerEnvelope{OK: true, Player: toPlayerResponse(player)})
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if auth.ObserverIDFromContext(r.Context()) == 0 {
		s.respondFailure(w, http.StatusUnauthorized, reasonUnauthenticated, "Faça login como olheiro para continuar")
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		s.respondFailure(w, http.StatusBadRequest, reasonValidation, "id inválido")
		return
	}

	if err := s.repo.Players.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondFailure(w, http.StatusNotFound, reasonNotFound, "Jogador não encontrado")
			return
		}
		s.logger.Error("delete player failed", "player_id", id, "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao remover jogador")
		return
	}
	s.respondJSON(w, http.StatusOK, okResponse{OK: true, Msg: "Jogador removido"})
}

func (s *Server) handleGetPlayerStats(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		s.respondFailure(w, http.StatusBadRequest, reasonValidation, "id inválido")
		return
	}

	st, err := s.repo.Stats.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondFailure(w, http.StatusNotFound, reasonNotFound, "Estatísticas não encontradas")
			return
		}
		s.logger.Error("get player stats failed", "player_id", id, "error", err)
		s.respondFailure(w, http.StatusInternalServerError, reasonInternal, "Falha ao buscar estatísticas")
		return
	}
	s.respondJSON(w, http.StatusOK, playerStatsResponse{
		OK:       true,
		PlayerID: st.PlayerID,
		Stats: statsResponse{
			Games:       st.Games,
			Goals:       st.Goals,
			Assists:     st.Assists,
			Shots:       st.Shots,
			Tackles:     st.Tackles,
			YellowCards: st.YellowCards,
			RedCards:    st.RedCards,
			Minutes:     st.Minutes,
		},
	})
}

func toPlayerResponse(p domain.Player) playerResponse {
	return playerResponse{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		TeamID:   p.TeamID,
		TeamName: p.TeamName,
	}
}
