package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/pyimports/pkg/imports"
)

const sampleManifest = `output: _imports.py
imports:
  - from: typing
    stdlib: true
    names: [Optional, Any]
  - from: boto3
    names: [client]
  - from: .models
    names:
      - Request
      - {name: Response, as: Resp}
`

func TestParse(t *testing.T) {
	req := require.New(t)
	m, err := Parse([]byte(sampleManifest), "gen/client.imports.yaml")
	req.NoError(err)

	req.Equal("gen/client.imports.yaml", m.Path)
	req.Equal("_imports.py", m.Output)
	req.Equal(0, m.MaxLineLength)
	req.Len(m.Imports, 3)

	req.Equal("typing", m.Imports[0].From)
	req.True(m.Imports[0].Stdlib)
	req.Equal([]Name{{Name: "Optional"}, {Name: "Any"}}, m.Imports[0].Names)

	req.False(m.Imports[1].Stdlib)
	req.Equal([]Name{{Name: "Request"}, {Name: "Response", Alias: "Resp"}}, m.Imports[2].Names)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "imports: [from: typing"},
		{"missing from", "imports:\n  - names: [Any]\n"},
		{"missing names", "imports:\n  - from: typing\n"},
		{"mapping without name", "imports:\n  - from: typing\n    names:\n      - {as: A}\n"},
		{"sequence as name", "imports:\n  - from: typing\n    names:\n      - [Any]\n"},
		{"negative line length", "max_line_length: -1\nimports: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Parse([]byte(tt.content), "bad.imports.yaml")
			req.Error(err)
			req.True(IsKind(err, KindInvalidManifest), "unexpected error kind: %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "client.imports.yaml")
	req.NoError(os.WriteFile(path, []byte(sampleManifest), 0644))

	m, err := Load(path)
	req.NoError(err)
	req.Equal(filepath.Join(dir, "_imports.py"), m.OutputPath())

	_, err = Load(filepath.Join(dir, "missing.imports.yaml"))
	req.Error(err)
	req.True(IsKind(err, KindNotFound))
	req.True(errors.Is(err, os.ErrNotExist))
}

func TestManifest_OutputPath(t *testing.T) {
	req := require.New(t)
	req.Equal("", (&Manifest{Path: "a/b.imports.yaml"}).OutputPath())
	req.Equal("/abs/out.py", (&Manifest{Path: "a/b.imports.yaml", Output: "/abs/out.py"}).OutputPath())
	req.Equal(filepath.Join("a", "out.py"), (&Manifest{Path: "a/b.imports.yaml", Output: "out.py"}).OutputPath())
	req.Equal("out.py", (&Manifest{Output: "out.py"}).OutputPath())
}

func TestManifest_Apply(t *testing.T) {
	req := require.New(t)
	m, err := Parse([]byte(sampleManifest), "client.imports.yaml")
	req.NoError(err)

	reg := m.NewRegistry(imports.DefaultMaxLineLength)
	req.NoError(m.Apply(reg, Options{}))

	expected := "from typing import Any, Optional\n" +
		"\n" +
		"from boto3 import client\n" +
		"\n" +
		"from .models import Request, Response as Resp\n" +
		"\n" +
		"\n"
	req.Equal(expected, reg.Render())
}

func TestManifest_ApplyDetectStdlib(t *testing.T) {
	content := `imports:
  - from: dataclasses
    names: [dataclass]
  - from: boto3
    names: [client]
`
	tests := []struct {
		name     string
		detect   bool
		expected string
	}{
		{
			name:     "without detection",
			detect:   false,
			expected: "from boto3 import client\nfrom dataclasses import dataclass\n\n\n",
		},
		{
			name:     "with detection",
			detect:   true,
			expected: "from dataclasses import dataclass\n\nfrom boto3 import client\n\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			m, err := Parse([]byte(content), "x.imports.yaml")
			req.NoError(err)

			reg := imports.New()
			req.NoError(m.Apply(reg, Options{DetectStdlib: tt.detect}))
			req.Equal(tt.expected, reg.Render())
		})
	}
}

func TestManifest_ApplyWildcard(t *testing.T) {
	req := require.New(t)
	content := `imports:
  - from: boto3
    names: [client]
  - from: .models
    names: ["*"]
`
	m, err := Parse([]byte(content), "wild.imports.yaml")
	req.NoError(err)

	reg := imports.New()
	req.NoError(reg.AddStdlibImport("typing", "Any"))
	err = m.Apply(reg, Options{})
	req.Error(err)
	req.True(IsKind(err, KindForbiddenImport))
	req.ErrorIs(err, imports.ErrForbiddenWildcardImport)
	req.Contains(err.Error(), "wild.imports.yaml")
	req.Empty(reg.Namespaces(imports.ExternalCategory), "a failed manifest must not leave partial imports")
	req.Empty(reg.Namespaces(imports.LocalCategory))
	req.Equal("from typing import Any\n\n\n", reg.Render())
}

func TestManifest_NewRegistry(t *testing.T) {
	req := require.New(t)
	req.Equal(100, (&Manifest{MaxLineLength: 100}).NewRegistry(88).MaxLineLength())
	req.Equal(88, (&Manifest{}).NewRegistry(88).MaxLineLength())
}

func TestOpError(t *testing.T) {
	req := require.New(t)
	root := errors.New("root")
	err := &OpError{Op: "manifest.load", Kind: KindNotFound, Path: "a.yaml", Err: root}

	req.Equal("manifest.load: not_found (path=a.yaml): root", err.Error())
	req.ErrorIs(err, root)
	req.False(IsKind(root, KindNotFound))

	var nilErr *OpError
	req.Equal("<nil>", nilErr.Error())
	req.Nil(nilErr.Unwrap())
}
