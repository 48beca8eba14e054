package cmd

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective session options as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			encoded, err := toml.Marshal(app.options)
			if err != nil {
				return fmt.Errorf("encode options: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}
}
