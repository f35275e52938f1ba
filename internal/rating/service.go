// Package rating implements the per-observer player rating store, the
// mean/count aggregator and the observer's own rating listing.
package rating

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Clark-Hu/scouting-api/internal/domain"
	"github.com/Clark-Hu/scouting-api/internal/logging"
	"github.com/Clark-Hu/scouting-api/internal/repository"
	"github.com/Clark-Hu/scouting-api/internal/validation"
)

const (
	MinValue = 1
	MaxValue = 5

	// NoTeam is shown for players without a team.
	NoTeam = "Sem time"
)

// Store is the persistence the service needs. *repository.RatingsRepository satisfies it.
type Store interface {
	SubmitAndTotals(ctx context.Context, params repository.RatingUpsertParams) (domain.Rating, bool, domain.RatingTotals, error)
	Totals(ctx context.Context, playerID int64) (domain.RatingTotals, error)
	ListByObserver(ctx context.Context, observerID int64) ([]domain.ObserverRating, error)
}

// SubmitInput is the rating submission schema. ObserverID comes from the
// authenticated caller, never from the body.
type SubmitInput struct {
	ObserverID int64  `json:"-"`
	PlayerID   *int64 `json:"id_jogador" validate:"required,gt=0"`
	Value      *int   `json:"nota" validate:"required,min=1,max=5"`
}

// Summary is the derived mean and count of a player's ratings.
type Summary struct {
	PlayerID int64
	Mean     string
	Total    int64
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	Rating  domain.Rating
	Created bool
	Summary Summary
}

// OwnRating is one of the caller's ratings with player display data.
type OwnRating struct {
	PlayerID   int64
	PlayerName string
	Position   string
	TeamName   string
	Value      int
}

// Service coordinates rating submissions and reads.
type Service struct {
	store    Store
	validate *validator.Validate
	tracer   trace.Tracer
	logger   *logging.Logger
}

// NewService builds a Service over the given store.
func NewService(store Store, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		store:    store,
		validate: validation.New(),
		tracer:   otel.Tracer("github.com/Clark-Hu/scouting-api/internal/rating"),
		logger:   logger.With("component", "rating"),
	}
}

// Submit upserts the caller's rating for a player and returns the updated summary.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "rating.Submit")
	defer span.End()

	if in.ObserverID <= 0 {
		return SubmitResult{}, ErrUnauthenticated
	}
	if err := s.validateInput(in); err != nil {
		span.SetStatus(codes.Error, "validation")
		return SubmitResult{}, err
	}
	playerID, value := *in.PlayerID, *in.Value
	span.SetAttributes(
		attribute.Int64("rating.observer_id", in.ObserverID),
		attribute.Int64("rating.player_id", playerID),
	)

	rating, created, totals, err := s.store.SubmitAndTotals(ctx, repository.RatingUpsertParams{
		ObserverID: in.ObserverID,
		PlayerID:   playerID,
		Value:      value,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return SubmitResult{}, &NotFoundError{Resource: "player", ID: playerID}
		case errors.Is(err, repository.ErrUnknownObserver):
			return SubmitResult{}, ErrUnauthenticated
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		s.logger.Error("submit rating failed", "observer_id", in.ObserverID, "player_id", playerID, "error", err)
		return SubmitResult{}, &InternalError{Op: "submit", Err: err}
	}

	s.logger.Debug("rating stored", "observer_id", in.ObserverID, "player_id", playerID, "created", created)
	return SubmitResult{
		Rating:  rating,
		Created: created,
		Summary: newSummary(playerID, totals),
	}, nil
}

// Summary computes the current mean and count for a player. Unknown players
// and players without ratings yield a zero summary.
func (s *Service) Summary(ctx context.Context, playerID int64) (Summary, error) {
	ctx, span := s.tracer.Start(ctx, "rating.Summary")
	defer span.End()
	span.SetAttributes(attribute.Int64("rating.player_id", playerID))

	totals, err := s.store.Totals(ctx, playerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "summary failed")
		s.logger.Error("rating summary failed", "player_id", playerID, "error", err)
		return Summary{}, &InternalError{Op: "summary", Err: err}
	}
	return newSummary(playerID, totals), nil
}

// OwnRatings lists every rating the observer has made, most recent first.
func (s *Service) OwnRatings(ctx context.Context, observerID int64) ([]OwnRating, error) {
	ctx, span := s.tracer.Start(ctx, "rating.OwnRatings")
	defer span.End()

	if observerID <= 0 {
		return nil, ErrUnauthenticated
	}
	rows, err := s.store.ListByObserver(ctx, observerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		s.logger.Error("list own ratings failed", "observer_id", observerID, "error", err)
		return nil, &InternalError{Op: "own ratings", Err: err}
	}

	out := make([]OwnRating, 0, len(rows))
	for _, row := range rows {
		team := NoTeam
		if row.TeamName != nil && *row.TeamName != "" {
			team = *row.TeamName
		}
		out = append(out, OwnRating{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			Position:   row.Position,
			TeamName:   team,
			Value:      row.Value,
		})
	}
	return out, nil
}

func (s *Service) validateInput(in SubmitInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "body", Message: err.Error()}
	}
	fe := fieldErrs[0]
	switch {
	case fe.Tag() == "required":
		return &ValidationError{Field: fe.Field(), Message: fe.Field() + " é obrigatório"}
	case fe.Field() == "nota":
		return &ValidationError{
			Field:   fe.Field(),
			Message: "nota deve ser um inteiro entre " + strconv.Itoa(MinValue) + " e " + strconv.Itoa(MaxValue),
		}
	default:
		return &ValidationError{Field: fe.Field(), Message: fe.Field() + " inválido"}
	}
}

func newSummary(playerID int64, totals domain.RatingTotals) Summary {
	return Summary{
		PlayerID: playerID,
		Mean:     FormatMean(totals),
		Total:    totals.Count,
	}
}

// FormatMean renders sum/count with exactly two decimals, "0.00" when empty.
// Halves round up, matching ROUND(numeric, 2).
func FormatMean(totals domain.RatingTotals) string {
	if totals.Count <= 0 || totals.Sum < 0 {
		return "0.00"
	}
	q := (totals.Sum*200 + totals.Count) / (2 * totals.Count)
	return fmt.Sprintf("%d.%02d", q/100, q%100)
}
