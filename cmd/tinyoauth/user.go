package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/steveiliop56/tinyoauth/internal/utils"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/charmbracelet/huh"
	"github.com/traefik/paerser/cli"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserConfig struct {
	Interactive bool   `description:"Create a user interactively."`
	Docker      bool   `description:"Format output for docker."`
	ID          int64  `description:"Numeric user id."`
	Username    string `description:"Username."`
	Password    string `description:"Password."`
	Email       string `description:"Email (optional)."`
}

func NewCreateUserConfig() *CreateUserConfig {
	return &CreateUserConfig{
		Interactive: false,
		Docker:      false,
		ID:          0,
		Username:    "",
		Password:    "",
		Email:       "",
	}
}

type VerifyUserConfig struct {
	Interactive  bool   `description:"Validate a user interactively."`
	Username     string `description:"Username."`
	Password     string `description:"Password."`
	PasswordFile string `description:"Path to a file containing the password."`
	User         string `description:"User entry (id:username:hash[:email])."`
}

func NewVerifyUserConfig() *VerifyUserConfig {
	return &VerifyUserConfig{
		Interactive:  false,
		Username:     "",
		Password:     "",
		PasswordFile: "",
		User:         "",
	}
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func userCmd() *cli.Command {
	cmd := &cli.Command{
		Name:          "user",
		Description:   "Manage configured users",
		Configuration: nil,
		Resources:     nil,
		Run: func(_ []string) error {
			return errors.New("missing subcommand, use tinyoauth user create or tinyoauth user verify")
		},
	}

	// Both subcommands have unique names so this cannot fail
	_ = cmd.AddCommand(createUserCmd())
	_ = cmd.AddCommand(verifyUserCmd())

	return cmd
}

func createUserCmd() *cli.Command {
	tCfg := NewCreateUserConfig()

	loaders := []cli.ResourceLoader{
		&cli.FlagLoader{},
	}

	return &cli.Command{
		Name:          "create",
		Description:   "Create a user",
		Configuration: tCfg,
		Resources:     loaders,
		Run: func(_ []string) error {
			tlog.NewSimpleLogger().Init()

			if tCfg.Interactive {
				id := ""

				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("ID").Value(&id).Validate((func(s string) error {
							n, err := strconv.ParseInt(s, 10, 64)
							if err != nil || n < 1 {
								return errors.New("id must be a positive integer")
							}
							return nil
						})),
						huh.NewInput().Title("Username").Value(&tCfg.Username).Validate(notEmpty("username")),
						huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&tCfg.Password).Validate(notEmpty("password")),
						huh.NewInput().Title("Email (optional)").Value(&tCfg.Email),
						huh.NewSelect[bool]().Title("Format the output for Docker?").Options(huh.NewOption("Yes", true), huh.NewOption("No", false)).Value(&tCfg.Docker),
					),
				)

				var baseTheme *huh.Theme = huh.ThemeBase()

				err := form.WithTheme(baseTheme).Run()

				if err != nil {
					return fmt.Errorf("failed to run interactive prompt: %w", err)
				}

				tCfg.ID, _ = strconv.ParseInt(id, 10, 64)
			}

			if tCfg.ID < 1 {
				return errors.New("id must be a positive integer")
			}

			if tCfg.Username == "" || tCfg.Password == "" {
				return errors.New("username and password cannot be empty")
			}

			if strings.Contains(tCfg.Username, ":") || strings.Contains(tCfg.Email, ":") {
				return errors.New("username and email cannot contain colons")
			}

			tlog.App.Info().Str("username", tCfg.Username).Msg("Creating user")

			passwd, err := bcrypt.GenerateFromPassword([]byte(tCfg.Password), bcrypt.DefaultCost)

			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			// If docker format is enabled, escape the dollar sign
			passwdStr := string(passwd)
			if tCfg.Docker {
				passwdStr = strings.ReplaceAll(passwdStr, "$", "$$")
			}

			user := fmt.Sprintf("%d:%s:%s", tCfg.ID, tCfg.Username, passwdStr)

			if tCfg.Email != "" {
				user = fmt.Sprintf("%s:%s", user, tCfg.Email)
			}

			tlog.App.Info().Str("user", user).Msg("User created")

			return nil
		},
	}
}

func verifyUserCmd() *cli.Command {
	tCfg := NewVerifyUserConfig()

	loaders := []cli.ResourceLoader{
		&cli.FlagLoader{},
	}

	return &cli.Command{
		Name:          "verify",
		Description:   "Verify a user is set up correctly.",
		Configuration: tCfg,
		Resources:     loaders,
		Run: func(_ []string) error {
			tlog.NewSimpleLogger().Init()

			if tCfg.Interactive {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("User (id:username:hash[:email])").Value(&tCfg.User).Validate(notEmpty("user")),
						huh.NewInput().Title("Username").Value(&tCfg.Username).Validate(notEmpty("username")),
						huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&tCfg.Password).Validate(notEmpty("password")),
					),
				)

				var baseTheme *huh.Theme = huh.ThemeBase()

				err := form.WithTheme(baseTheme).Run()

				if err != nil {
					return fmt.Errorf("failed to run interactive prompt: %w", err)
				}
			}

			password := utils.GetSecret(tCfg.Password, tCfg.PasswordFile)

			user, err := utils.ParseUser(tCfg.User)

			if err != nil {
				return fmt.Errorf("failed to parse user: %w", err)
			}

			if user.Username != tCfg.Username {
				return fmt.Errorf("username is incorrect")
			}

			err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))

			if err != nil {
				return fmt.Errorf("password is incorrect: %w", err)
			}

			tlog.App.Info().Int64("id", user.ID).Msg("User verified")

			return nil
		},
	}
}
