package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/ItsNotGoodName/xtagwm/internal/core"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(r io.Reader, cfg *Config) error

type encodeFunc func(w io.Writer, cfg Config) error

// file reads and writes a config file. Missing keys keep their defaults
// and writes replace the file atomically.
type file struct {
	filePath string
	decode   decodeFunc
	encode   encodeFunc
}

func (f file) Exists() (bool, error) {
	return core.FileExists(f.filePath)
}

func (f file) Read() (Config, error) {
	fd, err := os.Open(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer fd.Close()

	cfg := Default().withoutLists()
	if err := f.decode(fd, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode %s: %w", f.filePath, err)
	}
	return cfg.withDefaultLists(), nil
}

func (f file) Write(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(f.filePath), 0755); err != nil {
		return err
	}

	filePathTmp := f.filePath + ".tmp"
	fd, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := f.encode(fd, cfg); err != nil {
		fd.Close()
		os.Remove(filePathTmp)
		return err
	}
	if err := fd.Close(); err != nil {
		return err
	}

	return os.Rename(filePathTmp, f.filePath)
}

type YAML struct{ file }

func NewYAML(filePath string) YAML {
	return YAML{file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			err := yaml.NewDecoder(r).Decode(cfg)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}}
}

type JSON struct{ file }

func NewJSON(filePath string) JSON {
	return JSON{file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			return json.NewDecoder(r).Decode(cfg)
		},
		encode: func(w io.Writer, cfg Config) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}}
}

type TOML struct{ file }

func NewTOML(filePath string) TOML {
	return TOML{file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			_, err := toml.NewDecoder(r).Decode(cfg)
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			return toml.NewEncoder(w).Encode(cfg)
		},
	}}
}

// Memory holds a config in memory.
type Memory struct {
	mu  sync.RWMutex
	cfg *Config
}

func (m *Memory) Exists() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg != nil, nil
}

func (m *Memory) Read() (Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg == nil {
		return Default(), nil
	}
	return *m.cfg, nil
}

func (m *Memory) Write(cfg Config) error {
	m.mu.Lock()
	m.cfg = &cfg
	m.mu.Unlock()
	return nil
}
