package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Driver interface {
	Exists() (bool, error)
	Write(config Config) error
	Read() (Config, error)
}

// NewDriver picks a driver from the file extension.
func NewDriver(filePath string) (Driver, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return NewYAML(filePath), nil
	case ".json":
		return NewJSON(filePath), nil
	case ".toml":
		return NewTOML(filePath), nil
	default:
		return nil, fmt.Errorf("unsupported config file: %s", filePath)
	}
}

// NewStore writes the default config when the driver has none yet.
func NewStore(driver Driver) (Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return Store{}, err
	}
	if !exists {
		if err := driver.Write(Default()); err != nil {
			return Store{}, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return Store{
		driver: driver,
	}, nil
}

type Store struct {
	driver Driver
}

func (p *Store) GetConfig() (Config, error) {
	cfg, err := p.driver.Read()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (p *Store) UpdateConfig(fn func(cfg Config) (Config, error)) error {
	cfg, err := p.driver.Read()
	if err != nil {
		return err
	}

	cfg, err = fn(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return p.driver.Write(cfg)
}
