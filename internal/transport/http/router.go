package http

import (
	"encoding/json"
	"net/http"
	"time"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/game"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Catalog reports pool sizes for the tiers endpoint.
type Catalog interface {
	Counts() map[domain.Tier]int
}

type tierInfo struct {
	Tier           domain.Tier `json:"tier"`
	Words          int         `json:"words"`
	Award          int         `json:"award"`
	HintsAllowed   bool        `json:"hintsAllowed"`
	LevelThreshold int         `json:"levelThreshold,omitempty"`
}

// NewRouter mounts the REST endpoints and the websocket game endpoint.
func NewRouter(service *app.GameService, catalog Catalog) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		r.Get("/tiers", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, tiers(service.Options().Scoring, catalog))
		})
		r.Get("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, service.Leaderboard(r.Context()))
		})
	})

	// no timeout: the connection lives as long as the game
	r.Get("/ws", NewWSHandler(service).ServeWS)
	return r
}

func tiers(scoring game.Scoring, catalog Catalog) []tierInfo {
	counts := catalog.Counts()
	out := make([]tierInfo, 0, len(domain.Tiers()))
	for _, t := range domain.Tiers() {
		threshold, _ := game.LevelThreshold(t)
		out = append(out, tierInfo{
			Tier:           t,
			Words:          counts[t],
			Award:          scoring.Award(t),
			HintsAllowed:   t.HintsAllowed(),
			LevelThreshold: threshold,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
