package main

import (
	"fmt"

	"github.com/steveiliop56/tinyoauth/internal/bootstrap"
	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/utils/loaders"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/rs/zerolog/log"
	"github.com/traefik/paerser/cli"
)

func main() {
	tConfig := config.NewDefaultConfiguration()

	loaders := []cli.ResourceLoader{
		&loaders.FileLoader{},
		&loaders.FlagLoader{},
		&loaders.EnvLoader{},
	}

	cmdTinyoauth := &cli.Command{
		Name:          "tinyoauth",
		Description:   "A small OAuth 2.0 authorization server with a per-app data store.",
		Configuration: tConfig,
		Resources:     loaders,
		Run: func(_ []string) error {
			return runCmd(*tConfig)
		},
	}

	err := cmdTinyoauth.AddCommand(versionCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add version command")
	}

	err = cmdTinyoauth.AddCommand(healthcheckCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add healthcheck command")
	}

	err = cmdTinyoauth.AddCommand(userCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add user command")
	}

	err = cmdTinyoauth.AddCommand(clientCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add client command")
	}

	err = cli.Execute(cmdTinyoauth)

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

func runCmd(cfg config.Config) error {
	tlog.NewLogger(cfg.Log).Init()

	tlog.App.Info().Str("version", config.Version).Msg("Starting tinyoauth")

	app := bootstrap.NewBootstrapApp(cfg)

	err := app.Setup()

	if err != nil {
		return fmt.Errorf("failed to bootstrap app: %w", err)
	}

	return nil
}
