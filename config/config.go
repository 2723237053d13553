// Package config holds the runtime settings shared by all the commands. A Config is built
// once at startup from the platform defaults, overridden by PATHFINDER_* environment
// variables and then by command line flags.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const PREFIX = "PATHFINDER_"

// Default store file name, relative to the work directory.
const DEFAULT_STORE = "pathfinder-sheets.db"

type Config struct {
	Workdir          string        `env:"WORKDIR"`
	Credentials      string        `env:"CREDENTIALS"`
	Store            string        `env:"STORE"`
	URL              string        `env:"URL"`
	Redirect         string        `env:"REDIRECT" envDefault:"127.0.0.1:8085"`
	Browser          string        `env:"BROWSER"`
	ExchangeTimeout  time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"30s"`
	PromptTimeout    time.Duration `env:"PROMPT_TIMEOUT" envDefault:"5m"`
	StoreAccessToken bool          `env:"STORE_ACCESS_TOKEN"`
	MagicDice        int           `env:"MAGIC_DICE" envDefault:"2"`
	Runs             int           `env:"RUNS" envDefault:"100"`
	Debug            bool          `env:"DEBUG"`
}

// NewConfig returns the platform defaults overridden from the process environment.
func NewConfig() (*Config, error) {
	return load(env.Options{Prefix: PREFIX})
}

// FromEnvironment is NewConfig with an explicit environment, e.g. for tests.
func FromEnvironment(environment map[string]string) (*Config, error) {
	return load(env.Options{Prefix: PREFIX, Environment: environment})
}

func load(options env.Options) (*Config, error) {
	c := Config{
		Workdir:     DEFAULT_WORKDIR,
		Credentials: DEFAULT_CREDENTIALS,
		Browser:     DEFAULT_BROWSER,
	}

	if err := env.ParseWithOptions(&c, options); err != nil {
		return nil, fmt.Errorf("invalid configuration (%v)", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the settings that cannot be corrected by a default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Workdir) == "" {
		return fmt.Errorf("invalid configuration - missing work directory")
	}

	if c.ExchangeTimeout <= 0 {
		return fmt.Errorf("invalid configuration - exchange timeout must be positive (%v)", c.ExchangeTimeout)
	}

	if c.PromptTimeout <= 0 {
		return fmt.Errorf("invalid configuration - prompt timeout must be positive (%v)", c.PromptTimeout)
	}

	if c.MagicDice < 1 {
		return fmt.Errorf("invalid configuration - magic dice must be at least 1 (%v)", c.MagicDice)
	}

	if c.Runs < 1 {
		return fmt.Errorf("invalid configuration - runs must be at least 1 (%v)", c.Runs)
	}

	return nil
}

// StoreFile returns the credential store path. A relative store is resolved against the
// work directory.
func (c *Config) StoreFile() string {
	file := strings.TrimSpace(c.Store)
	if file == "" {
		file = DEFAULT_STORE
	}

	if !filepath.IsAbs(file) {
		file = filepath.Join(c.Workdir, file)
	}

	return file
}

// RedirectURL is the OAuth2 redirect for the loopback authorisation flow.
func (c *Config) RedirectURL() string {
	return fmt.Sprintf("http://%v/", c.Redirect)
}
