// Package manifest reads and writes YAML batch job lists.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ivlev/alive2json/internal/system"
	"gopkg.in/yaml.v3"
)

const Version = "1.0"

// Manifest lists the conversions of one batch run
type Manifest struct {
	Version string `yaml:"version"`
	Jobs    []Job  `yaml:"jobs"`
}

// Job converts a single input document into a module
type Job struct {
	Input          string `yaml:"input"`
	Output         string `yaml:"output,omitempty"`         // Defaults to <input>.js next to the input
	Format         string `yaml:"format,omitempty"`         // alive or lottie
	SkipUnresolved bool   `yaml:"skipUnresolved,omitempty"` // Lottie only
}

// Write writes a manifest to a YAML file
func Write(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads a manifest from a YAML file. Relative job paths are resolved against
// the manifest's directory.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range m.Jobs {
		job := &m.Jobs[i]
		if job.Input == "" {
			return nil, fmt.Errorf("manifest %s: job %d has no input", path, i)
		}
		job.Input = resolve(base, job.Input)
		if job.Output == "" {
			job.Output = system.ModulePath(job.Input, "")
		} else {
			job.Output = resolve(base, job.Output)
		}
	}

	return &m, nil
}

// FromSources builds a manifest converting every input into outDir.
func FromSources(inputs []string, outDir, format string) *Manifest {
	m := &Manifest{Version: Version, Jobs: make([]Job, 0, len(inputs))}
	for _, in := range inputs {
		m.Jobs = append(m.Jobs, Job{
			Input:  in,
			Output: system.ModulePath(in, outDir),
			Format: format,
		})
	}
	return m
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
