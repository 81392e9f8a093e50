// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package conf

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Feed Server configuration
type Config struct {
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"` // "debug", "info", "warn", "error"
	Port     int    `yaml:"port" envconfig:"PORT"`
	Dsn      string `yaml:"dsn" envconfig:"DSN"`
	Access   `yaml:"access"`
	JWT      `yaml:"jwt"`
}

type Access struct {
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
}

type JWT struct {
	SecretKey string `yaml:"secret_key" envconfig:"JWT_SECRET_KEY"`
	// admin accounts allowed to log in, username -> password
	Admin map[string]string `yaml:"admin"`
}

// Init reads the configuration file, then applies FEEDSERVER_* environment
// variable overrides.
func Init(configFile string) (*Config, error) {

	var c Config

	if configFile != "" {
		f, _ := filepath.Abs(configFile)
		yamlData, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(yamlData, &c)
		if err != nil {
			return nil, err
		}

	} else {
		return nil, errors.New("failed to find the configuration file")
	}

	// environment overrides, e.g. FEEDSERVER_PORT, FEEDSERVER_DSN
	err := envconfig.Process("feedserver", &c)
	if err != nil {
		return nil, err
	}

	if c.Port == 0 {
		c.Port = 8081
	}

	return &c, nil
}
