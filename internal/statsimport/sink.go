package statsimport

import (
	"context"
	"fmt"

	"github.com/Clark-Hu/scouting-api/internal/logging"
	"github.com/Clark-Hu/scouting-api/internal/repository"
)

// PostgresSink writes a season in a single transaction. Teams and players
// are found or created by name; each stat row is replaced, so re-running an
// import leaves the same state.
type PostgresSink struct {
	repo *repository.Repository
}

// NewPostgresSink wraps a repository.
func NewPostgresSink(repo *repository.Repository) *PostgresSink {
	return &PostgresSink{repo: repo}
}

// Write implements Sink.
func (s *PostgresSink) Write(ctx context.Context, records []Record) (int, error) {
	written := 0
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		teamIDs := make(map[string]int64)
		for _, rec := range records {
			params := repository.PlayerCreateParams{Name: rec.Player, Position: rec.Position}
			if rec.Team != "" {
				id, ok := teamIDs[rec.Team]
				if !ok {
					team, err := tx.Teams.FindOrCreate(ctx, rec.Team)
					if err != nil {
						return err
					}
					id = team.ID
					teamIDs[rec.Team] = id
				}
				params.TeamID = &id
			}
			playerID, err := tx.Players.FindOrCreate(ctx, params)
			if err != nil {
				return err
			}
			if err := tx.Stats.Replace(ctx, playerID, rec.Stats); err != nil {
				return fmt.Errorf("player %q: %w", rec.Player, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// LogSink only logs what would be written.
type LogSink struct {
	Logger *logging.Logger
}

// Write implements Sink.
func (s LogSink) Write(_ context.Context, records []Record) (int, error) {
	logger := s.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	for _, rec := range records {
		logger.Info("dry run",
			"player", rec.Player,
			"team", rec.Team,
			"position", rec.Position,
			"games", rec.Stats.Games,
			"goals", rec.Stats.Goals,
			"minutes", rec.Stats.Minutes,
		)
	}
	return len(records), nil
}
