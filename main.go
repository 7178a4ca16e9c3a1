package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phrasechain/go-server/internal/chain"
	"github.com/phrasechain/go-server/internal/fallback"
	"github.com/phrasechain/go-server/internal/httpserver"
	"github.com/phrasechain/go-server/internal/lexicon"
	"github.com/phrasechain/go-server/internal/plays"
	"os"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	table, err := fallback.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fallback chains")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	rng := chain.NewLockedRand(time.Now().UnixNano())
	builder := chain.NewBuilder(lexicon.New(), table, rng)
	srv := httpserver.New(builder, table, plays.NewStore(db))

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("fallbackChains", table.Len()).Msg("starting go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" { return v }
	return def
}
