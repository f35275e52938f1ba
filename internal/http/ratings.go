package httpserver

import (
	"errors"
	"net/http"

	"github.com/Clark-Hu/scouting-api/internal/auth"
	"github.com/Clark-Hu/scouting-api/internal/metrics"
	"github.com/Clark-Hu/scouting-api/internal/rating"
)

type ratingEntry struct {
	PlayerID int64 `json:"id_jogador"`
	OwnValue int   `json:"sua_nota"`
}

type ratingStats struct {
	Mean  string `json:"media_nota"`
	Total int64  `json:"total_avaliacoes"`
}

type submitRatingResponse struct {
	OK         bool        `json:"ok"`
	Msg        string      `json:"msg"`
	Rating     ratingEntry `json:"avaliacao"`
	Statistics ratingStats `json:"estatisticas"`
}

type ratingSummaryResponse struct {
	OK       bool   `json:"ok"`
	PlayerID int64  `json:"id_jogador"`
	Mean     string `json:"media_nota"`
	Total    int64  `json:"total_avaliacoes"`
}

type ownRatingEntry struct {
	PlayerID   int64  `json:"id_jogador"`
	PlayerName string `json:"nome_jogador"`
	Position   string `json:"posicao_jogador"`
	TeamName   string `json:"nome_time"`
	OwnValue   int    `json:"sua_nota"`
}

type ownRatingsResponse struct {
	OK      bool             `json:"ok"`
	Total   int              `json:"total"`
	Ratings []ownRatingEntry `json:"notas"`
}

// Rating failures keep HTTP 200 and carry the outcome in the body.
func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	var in rating.SubmitInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		s.metrics.RatingSubmitted(metrics.OutcomeValidation)
		s.respondFailure(w, http.StatusOK, reasonValidation, decodeErrorMessage(err))
		return
	}
	in.ObserverID = auth.ObserverIDFromContext(r.Context())

	res, err := s.ratings.Submit(r.Context(), in)
	if err != nil {
		reason, msg, outcome := classifyRatingError(err)
		s.metrics.RatingSubmitted(outcome)
		s.respondFailure(w, http.StatusOK, reason, msg)
		return
	}

	status, msg, outcome := http.StatusOK, "Nota atualizada com sucesso", metrics.OutcomeUpdated
	if res.Created {
		status, msg, outcome = http.StatusCreated, "Nota registrada com sucesso", metrics.OutcomeCreated
	}
	s.metrics.RatingSubmitted(outcome)
	s.respondJSON(w, status, submitRatingResponse{
		OK:  true,
		Msg: msg,
		Rating: ratingEntry{
			PlayerID: res.Rating.PlayerID,
			OwnValue: res.Rating.Value,
		},
		Statistics: ratingStats{
			Mean:  res.Summary.Mean,
			Total: res.Summary.Total,
		},
	})
}

func (s *Server) handleRatingSummary(w http.ResponseWriter, r *http.Request) {
	playerID, err := parseIDParam(r, "id")
	if err != nil {
		s.respondFailure(w, http.StatusOK, reasonValidation, "id_jogador inválido")
		return
	}

	summary, err := s.ratings.Summary(r.Context(), playerID)
	if err != nil {
		s.respondRatingFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ratingSummaryResponse{
		OK:       true,
		PlayerID: summary.PlayerID,
		Mean:     summary.Mean,
		Total:    summary.Total,
	})
}

func (s *Server) handleOwnRatings(w http.ResponseWriter, r *http.Request) {
	own, err := s.ratings.OwnRatings(r.Context(), auth.ObserverIDFromContext(r.Context()))
	if err != nil {
		s.respondRatingFailure(w, err)
		return
	}

	items := make([]ownRatingEntry, 0, len(own))
	for _, o := range own {
		items = append(items, ownRatingEntry{
			PlayerID:   o.PlayerID,
			PlayerName: o.PlayerName,
			Position:   o.Position,
			TeamName:   o.TeamName,
			OwnValue:   o.Value,
		})
	}
	s.respondJSON(w, http.StatusOK, ownRatingsResponse{OK: true, Total: len(items), Ratings: items})
}

// classifyRatingError maps a rating service error to its response reason,
// caller message and metrics outcome.
func classifyRatingError(err error) (reason, msg, outcome string) {
	var (
		vErr  *rating.ValidationError
		nfErr *rating.NotFoundError
	)
	switch {
	case errors.As(err, &vErr):
		return reasonValidation, vErr.Message, metrics.OutcomeValidation
	case errors.As(err, &nfErr):
		return reasonNotFound, "Jogador não encontrado", metrics.OutcomeNotFound
	case errors.Is(err, rating.ErrUnauthenticated):
		return reasonUnauthenticated, "Faça login como olheiro para continuar", metrics.OutcomeUnauthenticated
	default:
		return reasonInternal, "Erro interno ao processar a avaliação", metrics.OutcomeInternal
	}
}

func (s *Server) respondRatingFailure(w http.ResponseWriter, err error) {
	reason, msg, _ := classifyRatingError(err)
	s.respondFailure(w, http.StatusOK, reason, msg)
}
