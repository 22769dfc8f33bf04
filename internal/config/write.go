package config

import (
	"os"

	"github.com/rileyhilliard/tfui/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations as strings so the written YAML
// reads "50ms" instead of nanoseconds.
type fileConfig struct {
	Version   int             `yaml:"version"`
	Terraform TerraformConfig `yaml:"terraform"`
	UI        struct {
		RenderInterval string `yaml:"render_interval"`
		Watch          bool   `yaml:"watch"`
		Color          string `yaml:"color"`
	} `yaml:"ui"`
	Logs LogsConfig `yaml:"logs"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:   cfg.Version,
		Terraform: cfg.Terraform,
		Logs:      cfg.Logs,
	}
	fc.UI.RenderInterval = cfg.UI.RenderInterval.String()
	fc.UI.Watch = cfg.UI.Watch
	fc.UI.Color = cfg.UI.Color

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't encode config",
			"This shouldn't happen - please report this bug!")
	}
	return data, nil
}

// Write saves cfg to path. It refuses to replace an existing file unless
// force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				path+" already exists",
				"Use --force to overwrite it")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write "+path,
			"Check the directory is writable")
	}
	return nil
}
