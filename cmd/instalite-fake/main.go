// instalite-fake runs the in-memory Instalite backend on a local port, for
// developing the CLI without the real service. All state is lost on exit.
package main

import (
	"github.com/instalite/instalite-go/internal/config"
	"github.com/instalite/instalite-go/internal/fakeapi"
	"github.com/instalite/instalite-go/pkg/logger"
)

func main() {
	cfg := config.LoadFakeServer()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	srv := fakeapi.New(cfg.JWTSecret, cfg.TokenTTL, log)
	log.Info().Str("port", cfg.Port).Msg("fake backend listening")
	if err := srv.Echo.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
