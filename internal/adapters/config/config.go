// Package config loads session options from ~/.si/config.toml with
// viper, tolerating a missing file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".si"

	controllerURLKey = "controller.url"

	imageDirKey      = "images.dir"
	imagePerFrameKey = "images.per_frame"
	colorKey         = "images.color"
	instanceSegKey   = "images.instance_segmentation"
	classSegKey      = "images.class_segmentation"
	depthKey         = "images.depth"
	depthRawKey      = "images.depth_raw"

	objectActionsKey  = "actions.object_actions"
	defaultActionsKey = "actions.defaults"
	rebindsKey        = "actions.bindings"

	defaultControllerURL = "http://127.0.0.1:9200"
)

// Options is the full configuration surface of a session. TOML tags
// line up with the config file so `si config show` can marshal the
// effective options back out.
type Options struct {
	Controller ControllerOptions `toml:"controller"`
	Images     ImageOptions      `toml:"images"`
	Actions    ActionOptions     `toml:"actions"`
}

type ControllerOptions struct {
	URL string `toml:"url"`
}

type ImageOptions struct {
	Dir                  string `toml:"dir"`
	PerFrame             bool   `toml:"per_frame"`
	Color                bool   `toml:"color"`
	InstanceSegmentation bool   `toml:"instance_segmentation"`
	ClassSegmentation    bool   `toml:"class_segmentation"`
	Depth                bool   `toml:"depth"`
	DepthRaw             bool   `toml:"depth_raw"`
}

type ActionOptions struct {
	ObjectActions bool              `toml:"object_actions"`
	Defaults      []string          `toml:"defaults"`
	Bindings      map[string]string `toml:"bindings,omitempty"`
}

func Load(cfg *viper.Viper) (Options, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Options{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	cfg.SetDefault(controllerURLKey, defaultControllerURL)
	cfg.SetDefault(imageDirKey, ".")
	cfg.SetDefault(imagePerFrameKey, false)
	cfg.SetDefault(colorKey, false)
	cfg.SetDefault(instanceSegKey, false)
	cfg.SetDefault(classSegKey, false)
	cfg.SetDefault(depthKey, false)
	cfg.SetDefault(depthRawKey, false)
	cfg.SetDefault(objectActionsKey, true)
	cfg.SetDefault(defaultActionsKey, defaultActionNames())

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Options{}, fmt.Errorf("read config file: %w", err)
		}
	}

	options := Options{
		Controller: ControllerOptions{
			URL: cfg.GetString(controllerURLKey),
		},
		Images: ImageOptions{
			Dir:                  cfg.GetString(imageDirKey),
			PerFrame:             cfg.GetBool(imagePerFrameKey),
			Color:                cfg.GetBool(colorKey),
			InstanceSegmentation: cfg.GetBool(instanceSegKey),
			ClassSegmentation:    cfg.GetBool(classSegKey),
			Depth:                cfg.GetBool(depthKey),
			DepthRaw:             cfg.GetBool(depthRawKey),
		},
		Actions: ActionOptions{
			ObjectActions: cfg.GetBool(objectActionsKey),
			Defaults:      cfg.GetStringSlice(defaultActionsKey),
			Bindings:      cfg.GetStringMapString(rebindsKey),
		},
	}

	if options.Controller.URL == "" {
		return Options{}, errors.New("controller url is empty")
	}
	return options, nil
}

func defaultActionNames() []string {
	actions := domain.AllDefaultActions()
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = string(action)
	}
	return names
}

// Keymap validates the configured action names and bindings and
// builds the static keymap. All-digit custom bindings are rejected so
// the object command slots stay collision-free.
func (o Options) Keymap() (domain.Keymap, error) {
	enabled := make([]domain.DefaultAction, 0, len(o.Actions.Defaults))
	for _, name := range o.Actions.Defaults {
		action, err := domain.ParseDefaultAction(name)
		if err != nil {
			return domain.Keymap{}, err
		}
		enabled = append(enabled, action)
	}

	var rebinds map[string]domain.DefaultAction
	if len(o.Actions.Bindings) > 0 {
		rebinds = make(map[string]domain.DefaultAction, len(o.Actions.Bindings))
		for key, name := range o.Actions.Bindings {
			action, err := domain.ParseDefaultAction(name)
			if err != nil {
				return domain.Keymap{}, fmt.Errorf("binding %q: %w", key, err)
			}
			rebinds[key] = action
		}
	}

	return domain.NewKeymap(enabled, rebinds)
}
