package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/billing-core/internal/infrastructure/postgres"
	"github.com/jhoicas/billing-core/pkg/config"
	"github.com/jhoicas/billing-core/pkg/logger"
)

// Uso: migrate [up|down|version]. Sin argumentos aplica up.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := postgres.NewMigrator(postgres.ResolveDSN(cfg.DB))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	if err := run(m, cmd); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
	version, dirty, err := m.Version()
	if err != nil {
		log.Error().Err(err).Msg("leer versión")
		os.Exit(1)
	}
	log.Info().Str("cmd", cmd).Uint("version", version).Bool("dirty", dirty).Msg("migraciones OK")
}

func run(m *postgres.Migrator, cmd string) error {
	switch cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		return nil
	}
	return fmt.Errorf("comando desconocido %q (up, down, version)", cmd)
}
