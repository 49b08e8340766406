package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geodle/internal/config"
	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/db"
	"github.com/robalobadob/geodle/internal/httpserver"
	"github.com/robalobadob/geodle/internal/selector"
	"github.com/robalobadob/geodle/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	tbl, err := countries.Load(cfg.CountriesFile, cfg.SmallAreaLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load countries")
	}
	forced, err := countries.LoadForced(cfg.ForcedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load forced days")
	}
	ordinary, small := tbl.Stats()
	if ordinary == 0 || small == 0 {
		log.Fatal().Int("ordinary", ordinary).Int("small", small).Msg("both selection pools must be non-empty")
	}
	sel, err := selector.New(selector.FromTable(tbl, forced))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid selector configuration")
	}
	log.Info().Int("ordinary", ordinary).Int("small", small).Int("forced", len(forced)).Msg("reference data loaded")

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	var guesses store.Store // nil: SQLite
	if cfg.GuessStore == "memory" {
		guesses = store.NewMemoryStore()
		log.Warn().Msg("guesses are kept in memory and lost on restart")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := httpserver.New(httpserver.Deps{
		Config:    cfg,
		Countries: tbl,
		Selector:  sel,
		Guesses:   guesses,
		DB:        conn,
		Registry:  reg,
	})
	log.Info().Str("port", cfg.Port).Msg("starting geodle server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
