package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"
	"github.com/weberc2/hashreport/pkg/log"
	"gopkg.in/yaml.v2"
)

const (
	envVarPrefix = "HASHREPORT"
	appName      = "hashreport"
)

type Config struct {
	OutputDir    string `envconfig:"OUTPUT_DIR"    yaml:"outputDir"`
	LogDir       string `envconfig:"LOG_DIR"       yaml:"logDir"`
	ConsoleLevel string `envconfig:"CONSOLE_LEVEL" yaml:"consoleLevel"`
	FileLevel    string `envconfig:"FILE_LEVEL"    yaml:"fileLevel"`
	Sorted       bool   `envconfig:"SORTED"        yaml:"sorted"`
	Label        string `envconfig:"LABEL"         yaml:"label"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir:    ".",
		LogDir:       ".",
		ConsoleLevel: "info",
		FileLevel:    "debug",
	}
}

// LoadConfig starts from the defaults, overlays the config file (if any),
// then overlays environment variables.
func LoadConfig() (*Config, error) {
	configFile := os.Getenv(envVarPrefix + "_CONFIG_FILE")
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configFile = filepath.Join(home, ".config", appName+".yaml")
		}
	}

	c := DefaultConfig()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.UnmarshalStrict(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, nil
}

// ApplyFlags overrides the config with any flags set on the command line.
func (c *Config) ApplyFlags(ctx *cli.Context) {
	if ctx.IsSet(flagOutputDir) {
		c.OutputDir = ctx.String(flagOutputDir)
	}
	if ctx.IsSet(flagLogDir) {
		c.LogDir = ctx.String(flagLogDir)
	}
	if ctx.IsSet(flagConsoleLevel) {
		c.ConsoleLevel = ctx.String(flagConsoleLevel)
	}
	if ctx.IsSet(flagFileLevel) {
		c.FileLevel = ctx.String(flagFileLevel)
	}
	if ctx.IsSet(flagSorted) {
		c.Sorted = ctx.Bool(flagSorted)
	}
	if ctx.IsSet(flagLabel) {
		c.Label = ctx.String(flagLabel)
	}
}

func (c *Config) Validate() error {
	if y, e := func() (string, string) {
		if c.OutputDir == "" {
			return "outputDir", "OUTPUT_DIR"
		}
		if c.LogDir == "" {
			return "logDir", "LOG_DIR"
		}
		return "", ""
	}(); y != "" {
		return fmt.Errorf(
			"missing required configuration: %s / %s_%s",
			y,
			envVarPrefix,
			e,
		)
	}

	if _, err := log.ParseLevel(c.ConsoleLevel); err != nil {
		return fmt.Errorf("invalid configuration: consoleLevel: %w", err)
	}
	if _, err := log.ParseLevel(c.FileLevel); err != nil {
		return fmt.Errorf("invalid configuration: fileLevel: %w", err)
	}
	return nil
}
