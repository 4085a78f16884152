package main

import (
	"flag"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ramvik/taskhub/internal/api"
	"github.com/ramvik/taskhub/internal/todos"
	"github.com/ramvik/taskhub/pkg/environment"
	"github.com/ramvik/taskhub/pkg/errors"
)

type Config struct {
	Environment environment.Env `yaml:"environment"`
	API         api.Config      `yaml:"api"`
	Todos       todos.Config    `yaml:"todos"`
}

func loadConfig() (*Config, error) {
	path, err := filepath.Abs("config.yaml")
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFail(err, "read \"config.yaml\"")
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if envFromFlags := getEnvFromFlags(); envFromFlags != nil {
		cfg.Environment = *envFromFlags
	}

	return &cfg, nil
}

func getEnvFromFlags() *environment.Env {
	raw := flag.String("env", "", "environment (dev, prod)")
	flag.Parse()
	if raw == nil || *raw == "" {
		return nil
	}

	env := environment.FromString(*raw)
	return &env
}
