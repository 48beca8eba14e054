package cmd

import (
	"context"
	"fmt"

	"github.com/avasek/sim-interact-cli/internal/adapters/config"
	"github.com/avasek/sim-interact-cli/internal/adapters/frames"
	"github.com/avasek/sim-interact-cli/internal/adapters/render/step"
	"github.com/avasek/sim-interact-cli/internal/adapters/sim"
	termadapter "github.com/avasek/sim-interact-cli/internal/adapters/term"
	"github.com/avasek/sim-interact-cli/internal/application"
	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newInteractCmd(app *app) *cobra.Command {
	var (
		controllerURL   string
		imageDir        string
		imagePerFrame   bool
		noObjectActions bool
		saveChannels    []string
	)

	cmd := &cobra.Command{
		Use:   "interact",
		Short: "Drive the agent interactively from the keyboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := app.options
			if cmd.Flags().Changed("controller") {
				options.Controller.URL = controllerURL
			}
			if cmd.Flags().Changed("image-dir") {
				options.Images.Dir = imageDir
			}
			if cmd.Flags().Changed("image-per-frame") {
				options.Images.PerFrame = imagePerFrame
			}
			if noObjectActions {
				options.Actions.ObjectActions = false
			}
			if err := enableChannels(&options.Images, saveChannels); err != nil {
				return err
			}

			keymap, err := options.Keymap()
			if err != nil {
				return fmt.Errorf("build keymap: %w", err)
			}

			reader := termadapter.NewReader()
			if !reader.Interactive() {
				return fmt.Errorf("%w: run `si interact` from a terminal", domain.ErrNotATerminal)
			}

			client, err := sim.NewClient(options.Controller.URL, app.httpClient)
			if err != nil {
				return err
			}

			writer, err := frames.NewWriter(options.Images.Dir, options.Images.PerFrame, channelsFor(options.Images), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			err = runConnectSpinner(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) error {
				_, resetErr := client.Reset(ctx)
				return resetErr
			})
			if err != nil {
				return fmt.Errorf("reset controller: %w", err)
			}

			session := application.NewSession(application.SessionConfig{
				Controller:    client,
				Keys:          reader,
				Sink:          writer,
				Renderer:      step.NewRenderer(),
				Output:        cmd.OutOrStdout(),
				Keymap:        keymap,
				ObjectActions: options.Actions.ObjectActions,
			})
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&controllerURL, "controller", "", "controller base URL (overrides config)")
	cmd.Flags().StringVar(&imageDir, "image-dir", "", "directory for saved frames (overrides config)")
	cmd.Flags().BoolVar(&imagePerFrame, "image-per-frame", false, "write one file per step instead of overwriting")
	cmd.Flags().BoolVar(&noObjectActions, "no-object-actions", false, "disable the numbered object command menu")
	cmd.Flags().StringSliceVar(&saveChannels, "save", nil, "channels to save: color, instance_segmentation, class_segmentation, depth, depth_raw")

	return cmd
}

func channelsFor(images config.ImageOptions) frames.Channels {
	return frames.Channels{
		Color:                images.Color,
		InstanceSegmentation: images.InstanceSegmentation,
		ClassSegmentation:    images.ClassSegmentation,
		Depth:                images.Depth,
		DepthRaw:             images.DepthRaw,
	}
}

func enableChannels(images *config.ImageOptions, names []string) error {
	for _, name := range names {
		switch name {
		case "color":
			images.Color = true
		case "instance_segmentation":
			images.InstanceSegmentation = true
		case "class_segmentation":
			images.ClassSegmentation = true
		case "depth":
			images.Depth = true
		case "depth_raw":
			images.DepthRaw = true
		default:
			return fmt.Errorf("unknown channel %q", name)
		}
	}
	return nil
}
