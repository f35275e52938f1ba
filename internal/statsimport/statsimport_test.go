package statsimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/scouting-api/internal/domain"
)

const header = "jogador,time,posicao,gols,assistencias,finalizacoes,desarmes,cartoes_amarelos,cartoes_vermelhos,minutos\n"

func writeRound(t *testing.T, dir string, round int, body string) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("rodada-%02d.csv", round))
	require.NoError(t, os.WriteFile(path, []byte(header+body), 0o644))
}

type captureSink struct {
	records []Record
}

func (c *captureSink) Write(_ context.Context, records []Record) (int, error) {
	c.records = records
	return len(records), nil
}

func TestParseRound(t *testing.T) {
	body := header +
		"Pedro,Flamengo,ATA,2,1,5,0,1,0,90\n" +
		",Flamengo,ATA,9,9,9,9,9,9,9\n" +
		"Arrascaeta, Flamengo ,MEI,,2,,,,,78\n"

	rows, err := ParseRound(strings.NewReader(body), DefaultMapping())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Player:   "Pedro",
		Team:     "Flamengo",
		Position: "ATA",
		Stats:    domain.StatLine{Goals: 2, Assists: 1, Shots: 5, YellowCards: 1, Minutes: 90},
	}, rows[0])
	assert.Equal(t, "Flamengo", rows[1].Team)
	assert.Equal(t, domain.StatLine{Assists: 2, Minutes: 78}, rows[1].Stats)
}

func TestParseRoundErrors(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"empty":          {body: "", want: "empty sheet"},
		"missing player": {body: "nome,time\nPedro,Flamengo\n", want: `missing column "jogador"`},
		"missing team":   {body: "jogador,clube\nPedro,Flamengo\n", want: `missing column "time"`},
		"bad number":     {body: header + "Pedro,Flamengo,ATA,dois,0,0,0,0,0,90\n", want: "invalid value"},
		"negative":       {body: header + "Pedro,Flamengo,ATA,-1,0,0,0,0,0,90\n", want: "invalid value"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRound(strings.NewReader(tc.body), DefaultMapping())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseRoundCustomMapping(t *testing.T) {
	m, err := ParseMapping([]byte(`
jogador: atleta
time: clube
delimitador: ";"
estatisticas:
  gols: g
  minutos: ""
`))
	require.NoError(t, err)

	rows, err := ParseRound(strings.NewReader("Atleta;Clube;G;minutos\nHulk;Atlético-MG;3;90\n"), m)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hulk", rows[0].Player)
	assert.Equal(t, 3, rows[0].Stats.Goals)
	assert.Zero(t, rows[0].Stats.Minutes, "disabled column must be ignored")
}

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMapping(), m)

	_, err = ParseMapping([]byte("jogador: \"\"\n"))
	require.Error(t, err)

	_, err = ParseMapping([]byte("desconhecido: x\n"))
	require.Error(t, err)

	_, err = ParseMapping([]byte("arquivo: rodada.csv\n"))
	require.Error(t, err)

	m, err = ParseMapping([]byte("allow_missing: true\narquivo: r%d.csv\n"))
	require.NoError(t, err)
	assert.True(t, m.AllowMissing)
	assert.Equal(t, "r7.csv", m.RoundFile(7))
}

func TestLoadMappingFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("posicao: pos\n"), 0o644))

	m, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, "pos", m.Position)
	assert.Equal(t, "jogador", m.Player)

	_, err = LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestAggregate(t *testing.T) {
	sheets := [][]Row{
		{
			{Player: "Pedro", Team: "Flamengo", Position: "ATA", Stats: domain.StatLine{Goals: 1, Minutes: 90}},
			{Player: "Pedro", Team: "Flamengo", Stats: domain.StatLine{Goals: 1}},
			{Player: "Pedro", Team: "Santos", Position: "ZAG", Stats: domain.StatLine{Tackles: 4}},
		},
		nil,
		{
			{Player: "Pedro", Team: "Flamengo", Position: "CA", Stats: domain.StatLine{Goals: 2, Minutes: 45}},
		},
	}

	got := Aggregate(sheets)
	require.Len(t, got, 2)

	assert.Equal(t, Record{
		Player:   "Pedro",
		Team:     "Flamengo",
		Position: "CA",
		Stats:    domain.StatLine{Games: 2, Goals: 4, Minutes: 135},
	}, got[0])
	assert.Equal(t, "Santos", got[1].Team)
	assert.Equal(t, 1, got[1].Stats.Games)
}

func TestImporterRun(t *testing.T) {
	dir := t.TempDir()
	writeRound(t, dir, 1, "Pedro,Flamengo,ATA,1,0,3,0,0,0,90\nGerson,Flamengo,MEI,0,1,1,2,1,0,90\n")
	writeRound(t, dir, 2, "Pedro,Flamengo,ATA,2,1,4,0,0,0,80\n")
	writeRound(t, dir, 3, "Gerson,Flamengo,MEI,0,0,0,3,0,1,60\n")

	im, err := New(Options{Rounds: 3, Concurrency: 2})
	require.NoError(t, err)

	sink := &captureSink{}
	written, err := im.Run(context.Background(), dir, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	require.Len(t, sink.records, 2)
	gerson, pedro := sink.records[0], sink.records[1]
	assert.Equal(t, "Gerson", gerson.Player)
	assert.Equal(t, domain.StatLine{Games: 2, Assists: 1, Shots: 1, Tackles: 5, YellowCards: 1, RedCards: 1, Minutes: 150}, gerson.Stats)
	assert.Equal(t, "Pedro", pedro.Player)
	assert.Equal(t, domain.StatLine{Games: 2, Goals: 3, Assists: 1, Shots: 7, Minutes: 170}, pedro.Stats)
}

func TestImporterMissingRound(t *testing.T) {
	dir := t.TempDir()
	writeRound(t, dir, 1, "Pedro,Flamengo,ATA,1,0,0,0,0,0,90\n")

	im, err := New(Options{Rounds: 2})
	require.NoError(t, err)
	_, err = im.Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "round 2")

	m := DefaultMapping()
	m.AllowMissing = true
	im, err = New(Options{Mapping: m, Rounds: 2})
	require.NoError(t, err)
	records, err := im.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Stats.Games)
}

func TestImporterBadRoundNamesFile(t *testing.T) {
	dir := t.TempDir()
	writeRound(t, dir, 1, "Pedro,Flamengo,ATA,x,0,0,0,0,0,90\n")

	im, err := New(Options{Rounds: 1})
	require.NoError(t, err)
	_, err = im.Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rodada-01.csv")
	assert.Contains(t, err.Error(), "line 2")
}

func TestImporterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im, err := New(Options{Rounds: 4})
	require.NoError(t, err)
	_, err = im.Load(ctx, t.TempDir())
	require.Error(t, err)
}

func TestLogSinkCountsRecords(t *testing.T) {
	n, err := LogSink{}.Write(context.Background(), []Record{{Player: "A"}, {Player: "B"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
