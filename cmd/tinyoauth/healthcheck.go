package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/cenkalti/backoff/v5"
	"github.com/traefik/paerser/cli"
)

type healthzResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func healthcheckCmd() *cli.Command {
	return &cli.Command{
		Name:          "healthcheck",
		Description:   "Perform a health check",
		Configuration: nil,
		Resources:     nil,
		AllowArg:      true,
		Run: func(args []string) error {
			tlog.NewSimpleLogger().Init()

			appUrl := os.Getenv("TINYOAUTH_APPURL")

			if len(args) > 0 {
				appUrl = args[0]
			}

			if appUrl == "" {
				return errors.New("TINYOAUTH_APPURL is not set and no argument was provided")
			}

			tlog.App.Info().Str("app_url", appUrl).Msg("Performing health check")

			client := &http.Client{
				Timeout: 10 * time.Second,
			}

			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = 500 * time.Millisecond
			exp.RandomizationFactor = 0.1
			exp.Multiplier = 1.5
			exp.Reset()

			operation := func() (healthzResponse, error) {
				return checkHealth(client, appUrl+"/api/healthz")
			}

			healthResp, err := backoff.Retry(context.TODO(), operation, backoff.WithBackOff(exp), backoff.WithMaxTries(3))

			if err != nil {
				return err
			}

			tlog.App.Info().Interface("response", healthResp).Msg("Tinyoauth is healthy")

			return nil
		},
	}
}

func checkHealth(client *http.Client, url string) (healthzResponse, error) {
	req, err := http.NewRequest("GET", url, nil)

	if err != nil {
		return healthzResponse{}, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := client.Do(req)

	if err != nil {
		return healthzResponse{}, fmt.Errorf("failed to perform request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return healthzResponse{}, fmt.Errorf("service is not healthy, got: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return healthzResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	var healthResp healthzResponse

	err = json.Unmarshal(body, &healthResp)

	if err != nil {
		return healthzResponse{}, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}

	return healthResp, nil
}
