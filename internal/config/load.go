// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EndpointsFile = "endpoints.yaml"
	ActionsFile   = "controller_action.yaml"
)

// DefaultDir is the config directory shipped alongside the binary:
// <dir of executable>/../config.
func DefaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "config"
	}
	return filepath.Join(filepath.Dir(exe), "..", "config")
}

// Load reads both config files from dir.
func Load(dir string) (*Files, error) {
	endpoints, err := LoadEndpoints(filepath.Join(dir, EndpointsFile))
	if err != nil {
		return nil, err
	}
	actions, err := LoadActions(filepath.Join(dir, ActionsFile))
	if err != nil {
		return nil, err
	}
	return &Files{Endpoints: endpoints, Actions: actions}, nil
}

// LoadEndpoints reads a service -> endpoint mapping.
func LoadEndpoints(path string) (EndpointMapping, error) {
	var endpoints EndpointMapping
	if err := decodeFile(path, &endpoints); err != nil {
		return nil, err
	}
	if endpoints == nil {
		endpoints = EndpointMapping{}
	}
	return endpoints, nil
}

// LoadActions reads an action -> controller mapping. Keys are lowercased.
func LoadActions(path string) (ActionMapping, error) {
	var raw map[string]ActionEntry
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	actions := make(ActionMapping, len(raw))
	for name, entry := range raw {
		actions[strings.ToLower(name)] = entry
	}
	return actions, nil
}

func decodeFile(path string, out any) error {
	abs, _ := filepath.Abs(path)
	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return nil
}
