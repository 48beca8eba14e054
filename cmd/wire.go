package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/avasek/sim-interact-cli/internal/adapters/config"
	"github.com/spf13/viper"
)

type app struct {
	options    config.Options
	httpClient *http.Client
}

func wireApp() (*app, error) {
	options, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire configuration: %w", err)
	}

	if url := os.Getenv("SI_CONTROLLER_URL"); url != "" {
		options.Controller.URL = url
	}

	return &app{
		options:    options,
		httpClient: http.DefaultClient,
	}, nil
}
