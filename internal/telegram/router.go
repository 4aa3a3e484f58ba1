package telegram

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hammamikhairi/mealbot/internal/logger"
)

// WebhookPath is where Telegram posts updates.
const WebhookPath = "/webhook"

// NewRouter serves the webhook and a health check. decode parses the
// request body into an update; deliver must not block.
func NewRouter(decode func(*http.Request) (*tgbotapi.Update, error), deliver func(tgbotapi.Update), log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	r.Post(WebhookPath, func(w http.ResponseWriter, req *http.Request) {
		update, err := decode(req)
		if err != nil {
			log.Warn("bad webhook payload: %v", err)
			respondJSON(w, map[string]string{"error": "invalid update"}, http.StatusBadRequest)
			return
		}
		deliver(*update)
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
