// Package statsimport aggregates per-round CSV stat sheets into cumulative
// player statistics.
package statsimport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRounds is the number of rounds in a full season.
const DefaultRounds = 38

// StatColumns names the CSV header of each stat column. An empty name
// disables that column.
type StatColumns struct {
	Goals       string `yaml:"gols"`
	Assists     string `yaml:"assistencias"`
	Shots       string `yaml:"finalizacoes"`
	Tackles     string `yaml:"desarmes"`
	YellowCards string `yaml:"cartoes_amarelos"`
	RedCards    string `yaml:"cartoes_vermelhos"`
	Minutes     string `yaml:"minutos"`
}

// Mapping tells the parser which CSV headers carry which fields.
type Mapping struct {
	Player       string      `yaml:"jogador"`
	Team         string      `yaml:"time"`
	Position     string      `yaml:"posicao"`
	Stats        StatColumns `yaml:"estatisticas"`
	FilePattern  string      `yaml:"arquivo"`
	Delimiter    string      `yaml:"delimitador"`
	AllowMissing bool        `yaml:"allow_missing"`
}

// DefaultMapping matches the stat sheets published per round.
func DefaultMapping() Mapping {
	return Mapping{
		Player:   "jogador",
		Team:     "time",
		Position: "posicao",
		Stats: StatColumns{
			Goals:       "gols",
			Assists:     "assistencias",
			Shots:       "finalizacoes",
			Tackles:     "desarmes",
			YellowCards: "cartoes_amarelos",
			RedCards:    "cartoes_vermelhos",
			Minutes:     "minutos",
		},
		FilePattern: "rodada-%02d.csv",
		Delimiter:   ",",
	}
}

// LoadMapping reads a YAML mapping file. Keys absent from the file keep
// their default values.
func LoadMapping(path string) (Mapping, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping: %w", err)
	}
	return ParseMapping(payload)
}

// ParseMapping decodes a YAML mapping over the defaults.
func ParseMapping(payload []byte) (Mapping, error) {
	m := DefaultMapping()
	dec := yaml.NewDecoder(bytes.NewReader(payload))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Mapping{}, fmt.Errorf("decode mapping: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Validate checks the mapping can drive the parser.
func (m Mapping) Validate() error {
	if strings.TrimSpace(m.Player) == "" {
		return errors.New("mapping: jogador column is required")
	}
	if strings.TrimSpace(m.Team) == "" {
		return errors.New("mapping: time column is required")
	}
	if !strings.Contains(m.FilePattern, "%") {
		return fmt.Errorf("mapping: arquivo pattern %q must contain a round verb", m.FilePattern)
	}
	if len([]rune(m.Delimiter)) != 1 {
		return fmt.Errorf("mapping: delimitador must be a single character, got %q", m.Delimiter)
	}
	return nil
}

func (m Mapping) delimiter() rune {
	return []rune(m.Delimiter)[0]
}

// RoundFile returns the file name of a round.
func (m Mapping) RoundFile(round int) string {
	return fmt.Sprintf(m.FilePattern, round)
}
