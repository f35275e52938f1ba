package statsimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

// Row is one player line of a round sheet.
type Row struct {
	Player   string
	Team     string
	Position string
	Stats    domain.StatLine
}

type columnIndex struct {
	player, team, position int
	stats                  []statColumn
}

type statColumn struct {
	header string
	index  int
	apply  func(*domain.StatLine, int)
}

// ParseRound reads one CSV round sheet. Rows with an empty player name are
// skipped; an empty numeric cell counts as zero.
func ParseRound(r io.Reader, m Mapping) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = m.delimiter()
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty sheet")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := indexColumns(header, m)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		name := cell(record, idx.player)
		if name == "" {
			continue
		}
		row := Row{
			Player:   name,
			Team:     cell(record, idx.team),
			Position: cell(record, idx.position),
		}
		for _, col := range idx.stats {
			raw := cell(record, col.index)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: column %s: invalid value %q", line, col.header, raw)
			}
			col.apply(&row.Stats, n)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func indexColumns(header []string, m Mapping) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}
	lookup := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := positions[strings.ToLower(strings.TrimSpace(name))]; ok {
			return i
		}
		return -1
	}

	idx := columnIndex{
		player:   lookup(m.Player),
		team:     lookup(m.Team),
		position: lookup(m.Position),
	}
	if idx.player < 0 {
		return idx, fmt.Errorf("missing column %q", m.Player)
	}
	if idx.team < 0 {
		return idx, fmt.Errorf("missing column %q", m.Team)
	}

	candidates := []statColumn{
		{header: m.Stats.Goals, apply: func(s *domain.StatLine, n int) { s.Goals += n }},
		{header: m.Stats.Assists, apply: func(s *domain.StatLine, n int) { s.Assists += n }},
		{header: m.Stats.Shots, apply: func(s *domain.StatLine, n int) { s.Shots += n }},
		{header: m.Stats.Tackles, apply: func(s *domain.StatLine, n int) { s.Tackles += n }},
		{header: m.Stats.YellowCards, apply: func(s *domain.StatLine, n int) { s.YellowCards += n }},
		{header: m.Stats.RedCards, apply: func(s *domain.StatLine, n int) { s.RedCards += n }},
		{header: m.Stats.Minutes, apply: func(s *domain.StatLine, n int) { s.Minutes += n }},
	}
	for _, c := range candidates {
		if c.index = lookup(c.header); c.index >= 0 {
			idx.stats = append(idx.stats, c)
		}
	}
	return idx, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
