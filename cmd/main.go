package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/lukiod/spur-assignment/internal/ai"
	"github.com/lukiod/spur-assignment/internal/chat"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// --- DB ---
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}
	if err := chat.InitSchema(ctx, db); err != nil {
		log.Fatalf("db schema error: %v", err)
	}

	// --- Reply generation ---
	apiKey := os.Getenv("OPENAI_API_KEY")
	gate := ai.NewGate()
	if mode := gate.Resolve(apiKey != ""); mode == ai.ModeDegradedOnly {
		log.Warn("OPENAI_API_KEY is not set, serving deterministic fallback replies only")
	}

	models := parseModels(os.Getenv("OPENAI_MODELS"))
	invoker := ai.NewOpenAIInvoker(apiKey, os.Getenv("OPENAI_BASE_URL"))
	replyRouter := ai.NewRouter(models, invoker, ai.NewTracker(ai.DefaultCooldown), gate)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(chat.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- Chat module wiring ---
	store := chat.NewStore(db)
	svc := chat.NewService(store, replyRouter)
	handler := chat.NewHandler(svc)

	chat.RegisterRoutes(r, handler)

	// --- health & metrics ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	log.Infof("listening on :%s (models: %s)", port, strings.Join(models, ", "))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// parseModels splits the OPENAI_MODELS priority list. The first entry is
// tried first on every request; an empty or all-blank value falls back to
// the defaults.
func parseModels(raw string) []string {
	var models []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return []string{"gpt-4o-mini", "gpt-3.5-turbo"}
	}
	return models
}
