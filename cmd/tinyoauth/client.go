package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/steveiliop56/tinyoauth/internal/bootstrap"
	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/traefik/paerser/cli"
)

type CreateClientConfig struct {
	DatabasePath string   `description:"The path to the SQLite database file."`
	Name         string   `description:"Client name."`
	RedirectURIs []string `description:"Comma-separated list of redirect URIs."`
	OwnerID      int64    `description:"Numeric id of the owning user."`
}

func NewCreateClientConfig() *CreateClientConfig {
	return &CreateClientConfig{
		DatabasePath: config.NewDefaultConfiguration().DatabasePath,
		Name:         "",
		RedirectURIs: []string{},
		OwnerID:      0,
	}
}

func clientCmd() *cli.Command {
	cmd := &cli.Command{
		Name:          "client",
		Description:   "Manage registered clients",
		Configuration: nil,
		Resources:     nil,
		Run: func(_ []string) error {
			return errors.New("missing subcommand, use tinyoauth client create")
		},
	}

	_ = cmd.AddCommand(createClientCmd())

	return cmd
}

func createClientCmd() *cli.Command {
	tCfg := NewCreateClientConfig()

	loaders := []cli.ResourceLoader{
		&cli.FlagLoader{},
	}

	return &cli.Command{
		Name:          "create",
		Description:   "Register a client directly in the database",
		Configuration: tCfg,
		Resources:     loaders,
		Run: func(_ []string) error {
			tlog.NewSimpleLogger().Init()

			if tCfg.OwnerID < 1 {
				return errors.New("owner id must be a positive integer")
			}

			app := bootstrap.NewBootstrapApp(config.Config{
				DatabasePath: tCfg.DatabasePath,
			})

			store, db, err := app.OpenStore()

			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			defer db.Close()

			clients := service.NewClientService(service.ClientServiceConfig{
				MaxClientsPerOwner: -1,
			}, store, nil)

			err = clients.Init()

			if err != nil {
				return err
			}

			client, err := clients.Register(context.Background(), tCfg.Name, tCfg.RedirectURIs, tCfg.OwnerID)

			if err != nil {
				return fmt.Errorf("failed to register client: %w", err)
			}

			builder := strings.Builder{}

			fmt.Fprintf(&builder, "Created client %s\n\n", client.Name)
			fmt.Fprintf(&builder, "Client ID: %s\n", client.ClientID)
			fmt.Fprintf(&builder, "Client Secret: %s\n", client.ClientSecret)
			fmt.Fprintf(&builder, "Redirect URIs: %s\n\n", strings.Join(client.RedirectURIs, ", "))
			fmt.Fprintln(&builder, "Keep the client secret private, it grants access to every token issued to this client.")

			fmt.Print(builder.String())

			return nil
		},
	}
}
