package httpserver

import (
	"net/url"
	"testing"
)

func FuzzBuildPlayerFilters(f *testing.F) {
	seeds := []string{
		"q=Pedro&posicao=ATA&time=Flamengo",
		"limit=abc",
		"limit=500",
		"cursor=eyJpZCI6MX0=",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildPlayerFilters(values)
	})
}
