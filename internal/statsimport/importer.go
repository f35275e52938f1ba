package statsimport

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Clark-Hu/scouting-api/internal/domain"
	"github.com/Clark-Hu/scouting-api/internal/logging"
)

// DefaultConcurrency bounds how many round files are parsed at once.
const DefaultConcurrency = 8

// Record is the season total of one (player, team) pair.
type Record struct {
	Player   string
	Team     string
	Position string
	Stats    domain.StatLine
}

// Sink persists aggregated records and reports how many were written.
type Sink interface {
	Write(ctx context.Context, records []Record) (int, error)
}

// Options configures an Importer.
type Options struct {
	Mapping     Mapping
	Rounds      int
	Concurrency int
	Logger      *logging.Logger
}

// Importer loads a season of round sheets from a directory.
type Importer struct {
	mapping     Mapping
	rounds      int
	concurrency int
	logger      *logging.Logger
}

// New builds an Importer, filling zero options with defaults.
func New(opts Options) (*Importer, error) {
	if opts.Mapping == (Mapping{}) {
		opts.Mapping = DefaultMapping()
	}
	if err := opts.Mapping.Validate(); err != nil {
		return nil, err
	}
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultRounds
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Importer{
		mapping:     opts.Mapping,
		rounds:      opts.Rounds,
		concurrency: opts.Concurrency,
		logger:      logger.With("component", "statsimport"),
	}, nil
}

// Load parses every round file in dir and returns the aggregated season
// totals ordered by team then player.
func (im *Importer) Load(ctx context.Context, dir string) ([]Record, error) {
	sheets := make([][]Row, im.rounds)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)
	for i := 0; i < im.rounds; i++ {
		round := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := im.loadRound(dir, round)
			if err != nil {
				return err
			}
			sheets[round-1] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := Aggregate(sheets)
	im.logger.Info("season loaded", "dir", dir, "rounds", im.rounds, "players", len(records))
	return records, nil
}

func (im *Importer) loadRound(dir string, round int) ([]Row, error) {
	path := filepath.Join(dir, im.mapping.RoundFile(round))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && im.mapping.AllowMissing {
			im.logger.Warn("round file missing, skipping", "round", round, "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("round %d: %w", round, err)
	}
	defer f.Close()

	rows, err := ParseRound(f, im.mapping)
	if err != nil {
		return nil, fmt.Errorf("round %d (%s): %w", round, path, err)
	}
	im.logger.Debug("round parsed", "round", round, "rows", len(rows))
	return rows, nil
}

// Run loads the season and hands it to sink.
func (im *Importer) Run(ctx context.Context, dir string, sink Sink) (int, error) {
	records, err := im.Load(ctx, dir)
	if err != nil {
		return 0, err
	}
	written, err := sink.Write(ctx, records)
	if err != nil {
		return written, fmt.Errorf("write records: %w", err)
	}
	im.logger.Info("season imported", "written", written)
	return written, nil
}

type recordKey struct {
	player string
	team   string
}

// Aggregate sums round sheets per (player, team). Games counts the rounds a
// pair appears in, however many lines it has in that round.
func Aggregate(sheets [][]Row) []Record {
	totals := make(map[recordKey]*Record)
	for _, rows := range sheets {
		seen := make(map[recordKey]bool, len(rows))
		for _, row := range rows {
			key := recordKey{player: row.Player, team: row.Team}
			rec, ok := totals[key]
			if !ok {
				rec = &Record{Player: row.Player, Team: row.Team}
				totals[key] = rec
			}
			if row.Position != "" {
				rec.Position = row.Position
			}
			rec.Stats.Add(row.Stats)
			if !seen[key] {
				seen[key] = true
				rec.Stats.Games++
			}
		}
	}

	out := make([]Record, 0, len(totals))
	for _, rec := range totals {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Player < out[j].Player
	})
	return out
}
