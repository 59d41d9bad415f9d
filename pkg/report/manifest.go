package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadManifest reads a manifest, choosing JSON for .json files and YAML
// otherwise, and validates it.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided manifest
	if err != nil {
		return nil, err
	}

	var m Manifest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if m.Version == "" {
		m.Version = Version
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// WriteManifest writes m as YAML, or JSON for .json paths. The file is
// replaced atomically.
func WriteManifest(path string, m *Manifest) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return atomicWrite(path, data)
}

// atomicWrite writes to a temp file in the target directory and renames it.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
