package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".tfui.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/tfui"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'tfui init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .tfui.yaml in the Terraform working directory
// 3. .tfui.yaml in the current directory
// 4. ~/.config/tfui/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit, workDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	var candidates []string
	if workDir != "" {
		candidates = append(candidates, filepath.Join(workDir, ConfigFileName))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, ConfigFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, GlobalConfigDir, GlobalConfigFile))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not found.
func LoadOrDefault(explicit, workDir string) (*Config, string, error) {
	path, err := Find(explicit, workDir)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if v.IsSet("terraform.env") {
		env, err := readEnv(path)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid terraform.env section",
				"terraform.env must map variable names to strings")
		}
		cfg.Terraform.Env = env
	}

	cfg.Logs.Dir = ExpandTilde(cfg.Logs.Dir)
	return cfg, nil
}

// setDefaults registers every default with viper so partially written files
// keep the values they leave out.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("terraform.binary", cfg.Terraform.Binary)
	v.SetDefault("terraform.var_file", cfg.Terraform.VarFile)
	v.SetDefault("ui.render_interval", cfg.UI.RenderInterval.String())
	v.SetDefault("ui.watch", cfg.UI.Watch)
	v.SetDefault("ui.color", cfg.UI.Color)
	v.SetDefault("logs.enabled", cfg.Logs.Enabled)
	v.SetDefault("logs.dir", cfg.Logs.Dir)
	v.SetDefault("logs.keep_runs", cfg.Logs.KeepRuns)
	v.SetDefault("logs.keep_days", cfg.Logs.KeepDays)
	v.SetDefault("logs.max_size_mb", cfg.Logs.MaxSizeMB)
}

// readEnv reads terraform.env straight from the YAML file. Viper lowercases
// map keys, and environment variable names are case sensitive.
func readEnv(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Terraform struct {
			Env map[string]string `yaml:"env"`
		} `yaml:"terraform"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.Terraform.Env, nil
}
