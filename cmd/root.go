package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "si",
		Short:         "sim-interact (si): drive a simulated agent from the keyboard",
		Long:          "si connects to a running embodied-agent simulator and turns keystrokes into step commands: arrow keys move, shift+arrows rotate and look, and numbered menu entries trigger contextual object actions. Sensor frames from each step can be saved to disk.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newInteractCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
