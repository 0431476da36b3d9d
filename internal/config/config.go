package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/srcls/pkg/srcls"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of srcls.yaml.
type ProjectConfig struct {
	Root    string `yaml:"root"`
	OnError string `yaml:"on_error"`
}

// Policy parses OnError. An empty value yields srcls.PolicyAbort.
func (c *ProjectConfig) Policy() (srcls.ErrorPolicy, error) {
	return srcls.ParseErrorPolicy(c.OnError)
}

// Load reads srcls.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, srcls.ConfigFileName))
}

// LoadFile reads a config file at an explicit path. Unknown keys and an
// unknown on_error value are reported as srcls.ErrInvalidConfig.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", srcls.ErrInvalidConfig, path, err)
	}
	if _, err := cfg.Policy(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}
