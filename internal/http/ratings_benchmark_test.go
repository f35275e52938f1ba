package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func BenchmarkHandleSubmitRating(b *testing.B) {
	srv := buildTestServer(b)
	h := srv.Handler()

	token, _ := registerAndLogin(b, h, "bench@clube.com")
	playerID := createPlayer(b, h, token, "Benchmark", "Bench FC")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body := fmt.Sprintf(`{"id_jogador":%d,"nota":%d}`, playerID, i%5+1)
		rec := doJSON(b, h, http.MethodPost, "/notas", token, body)
		if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkHandleSubmitRatingInMemory(b *testing.B) {
	srv, tokens := buildRatingServer(b, newFakeRatingStore())
	h := srv.Handler()
	token := mustToken(b, tokens, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := doJSON(b, h, http.MethodPost, "/notas", token, `{"id_jogador":1,"nota":4}`)
		if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
