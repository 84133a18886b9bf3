// Package manifest loads the import requests of a generated file from YAML.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	errmsg "github.com/siyuan-infoblox/pyimports/pkg/errors"
	"github.com/siyuan-infoblox/pyimports/pkg/imports"
	"github.com/siyuan-infoblox/pyimports/pkg/std"
)

// Manifest describes the imports of one generated file
type Manifest struct {
	Path          string    `yaml:"-"`
	Output        string    `yaml:"output"`
	MaxLineLength int       `yaml:"max_line_length"`
	Imports       []Request `yaml:"imports"`
}

// Request asks for names from a single namespace
type Request struct {
	From   string `yaml:"from"`
	Stdlib bool   `yaml:"stdlib"`
	Names  []Name `yaml:"names"`
}

// Name is an imported symbol, written either as a scalar or as {name, as}
type Name struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"as"`
}

// UnmarshalYAML accepts both "Request" and "{name: Request, as: Req}"
func (n *Name) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.Name = value.Value
		n.Alias = ""
		return nil
	case yaml.MappingNode:
		type plain Name
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		if p.Name == "" {
			return fmt.Errorf("line %d: name is required", value.Line)
		}
		*n = Name(p)
		return nil
	default:
		return fmt.Errorf("line %d: name must be a string or a mapping", value.Line)
	}
}

// Options controls how a manifest is applied to a registry
type Options struct {
	// DetectStdlib routes namespaces of the Python standard library to the
	// stdlib group even when the request does not say so
	DetectStdlib bool
}

// Load reads and parses the manifest at path
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpError{
			Op:   "manifest.load",
			Kind: KindNotFound,
			Path: path,
			Err:  fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToReadManifest, err),
		}
	}
	return Parse(b, path)
}

// Parse decodes manifest data; path is recorded for error reporting and output resolution
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &OpError{
			Op:   "manifest.parse",
			Kind: KindInvalidManifest,
			Path: path,
			Err:  fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToParseManifest, err),
		}
	}
	m.Path = path

	if err := m.validate(); err != nil {
		return nil, &OpError{
			Op:   "manifest.parse",
			Kind: KindInvalidManifest,
			Path: path,
			Err:  err,
		}
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.MaxLineLength < 0 {
		return fmt.Errorf(errmsg.ErrMsgInvalidMaxLineLength, m.MaxLineLength)
	}
	for i, r := range m.Imports {
		if r.From == "" {
			return fmt.Errorf("imports[%d]: from is required", i)
		}
		if len(r.Names) == 0 {
			return fmt.Errorf("imports[%d] (%s): names must not be empty", i, r.From)
		}
	}
	return nil
}

// OutputPath resolves the output file against the manifest directory.
// It returns an empty string when no output is configured.
func (m *Manifest) OutputPath() string {
	if m.Output == "" {
		return ""
	}
	if filepath.IsAbs(m.Output) || m.Path == "" {
		return m.Output
	}
	return filepath.Join(filepath.Dir(m.Path), m.Output)
}

// NewRegistry creates a registry honoring the manifest line length, falling back to maxLineLength
func (m *Manifest) NewRegistry(maxLineLength int) *imports.Registry {
	if m.MaxLineLength > 0 {
		maxLineLength = m.MaxLineLength
	}
	return imports.New(imports.WithMaxLineLength(maxLineLength))
}

// Apply registers every requested name with reg. Requests are staged in a
// scratch registry so reg is left untouched when any of them fails.
func (m *Manifest) Apply(reg *imports.Registry, opts Options) error {
	staged := imports.New()
	for _, r := range m.Imports {
		stdlib := r.Stdlib || (opts.DetectStdlib && std.IsStandardModule(r.From))
		for _, n := range r.Names {
			var err error
			if stdlib {
				err = staged.AddStdlibImportAs(r.From, n.Name, n.Alias)
			} else {
				err = staged.AddImportAs(r.From, n.Name, n.Alias)
			}
			if err != nil {
				kind := KindInvalidManifest
				if errors.Is(err, imports.ErrForbiddenWildcardImport) {
					kind = KindForbiddenImport
				}
				return &OpError{
					Op:   "manifest.apply",
					Kind: kind,
					Path: m.Path,
					Err:  fmt.Errorf("from %s import %s: %w", r.From, n.Name, err),
				}
			}
		}
	}
	return reg.Merge(staged)
}
