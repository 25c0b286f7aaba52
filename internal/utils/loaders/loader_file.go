package loaders

import (
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/traefik/paerser/cli"
	"github.com/traefik/paerser/file"
	"github.com/traefik/paerser/flag"
)

type FileLoader struct{}

func (f *FileLoader) Load(args []string, cmd *cli.Command) (bool, error) {
	flags, err := flag.Parse(args, cmd.Configuration)

	if err != nil {
		return false, err
	}

	// paerser uses traefik as the root name
	configFile, ok := flags["traefik.configFile"]

	if !ok {
		configFile, ok = flags["traefik.configfile"]
	}

	if !ok || configFile == "" {
		return false, nil
	}

	tlog.App.Info().Str("file", configFile).Msg("Loading configuration from file")

	err = file.Decode(configFile, cmd.Configuration)

	if err != nil {
		return false, err
	}

	return true, nil
}
