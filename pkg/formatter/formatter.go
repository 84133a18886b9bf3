package formatter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	errmsg "github.com/siyuan-infoblox/pyimports/pkg/errors"
	"github.com/siyuan-infoblox/pyimports/pkg/imports"
	"github.com/siyuan-infoblox/pyimports/pkg/logger"
	"github.com/siyuan-infoblox/pyimports/pkg/manifest"
	"github.com/siyuan-infoblox/pyimports/pkg/utils"
)

// ErrOutputOutOfDate is returned in check mode when an output differs from its rendering
var ErrOutputOutOfDate = errors.New(errmsg.ErrMsgOutputOutOfDate)

type FormatterConfig struct {
	FilePath      string       // path to the manifest
	MaxLineLength int          // default line length, overridden per manifest
	DetectStdlib  bool         // route known stdlib namespaces to the stdlib group
	InPlace       bool         // write rendered imports to the manifest output
	Check         bool         // compare rendered imports with the manifest output
	Out           io.Writer    // destination of rendered imports and status lines, stdout if nil
	Logger        *slog.Logger // discarded if nil
}

// formatter renders the import manifests of a generation run
type formatter struct {
	config FormatterConfig
	out    io.Writer
	log    *slog.Logger
}

// New creates a new formatter
func New(config FormatterConfig) *formatter {
	if config.MaxLineLength <= 0 {
		config.MaxLineLength = imports.DefaultMaxLineLength
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	log := config.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &formatter{
		config: config,
		out:    out,
		log:    log,
	}
}

func (g *formatter) getFilePath() string {
	return g.config.FilePath
}

func (g *formatter) getInPlace() bool {
	return g.config.InPlace
}

func (g *formatter) getCheck() bool {
	return g.config.Check
}

// render builds a fresh registry for the manifest and renders it
func (g *formatter) render(m *manifest.Manifest) (string, error) {
	reg := m.NewRegistry(g.config.MaxLineLength)
	if err := m.Apply(reg, manifest.Options{DetectStdlib: g.config.DetectStdlib}); err != nil {
		return "", fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToApplyManifest, err)
	}
	g.log.Debug("manifest.rendered",
		"path", m.Path,
		"imports", reg.Len(),
		"max_line_length", reg.MaxLineLength(),
	)
	return reg.Render(), nil
}

// check compares the rendered imports with the existing output
func (g *formatter) check(m *manifest.Manifest, rendered string) error {
	output := m.OutputPath()
	current, err := os.ReadFile(output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToReadOutput, err)
	}
	if string(current) == rendered {
		fmt.Fprintf(g.out, errmsg.InfoMsgUpToDate+"\n", output)
		return nil
	}

	fmt.Fprintf(g.out, errmsg.InfoMsgOutOfDate+"\n", output)
	writeDiff(g.out, output, string(current), rendered)
	return fmt.Errorf("%s: %w", output, ErrOutputOutOfDate)
}

// ProcessFileWithOutput processes a manifest with optional stdout output
func (g *formatter) ProcessFileWithOutput(verbose bool) error {
	m, err := manifest.Load(g.getFilePath())
	if err != nil {
		return err
	}
	g.log.Debug("manifest.loaded", "path", m.Path, "requests", len(m.Imports))

	rendered, err := g.render(m)
	if err != nil {
		return err
	}

	if g.getInPlace() || g.getCheck() {
		if m.OutputPath() == "" {
			return fmt.Errorf("%s: %s", errmsg.ErrMsgNoOutputConfigured, m.Path)
		}
	}

	if g.getCheck() {
		return g.check(m, rendered)
	}

	if g.getInPlace() {
		if err := utils.WriteFile(m.OutputPath(), []byte(rendered)); err != nil {
			return fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToWriteOutput, err)
		}
		g.log.Debug("output.written", "path", m.OutputPath(), "bytes", len(rendered))
		return nil
	}

	if verbose {
		fmt.Fprint(g.out, rendered)
	}
	return nil
}

// ProcessFile processes a single manifest and prints its rendered imports
func (g *formatter) ProcessFile() error {
	return g.ProcessFileWithOutput(true)
}

// ProcessFiles processes multiple manifests, continuing past failures
func (g *formatter) ProcessFiles(filePaths []string) error {
	processedCount := 0
	errorCount := 0

	for _, filePath := range filePaths {
		g.config.FilePath = filePath
		if err := g.ProcessFileWithOutput(false); err != nil {
			fmt.Fprintf(g.out, errmsg.InfoMsgErrorProcessing+"\n", filePath, err)
			g.log.Warn("manifest.failed", "path", filePath, "err", err)
			errorCount++
		} else {
			processedCount++
			if g.getInPlace() && !g.getCheck() {
				fmt.Fprintf(g.out, errmsg.InfoMsgProcessedFiles+"\n", filePath)
			}
		}
	}

	fmt.Fprintf(g.out, errmsg.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		fmt.Fprintf(g.out, errmsg.InfoMsgErrorCount, errorCount)
	}
	fmt.Fprintln(g.out)

	if errorCount > 0 {
		return fmt.Errorf(errmsg.ErrMsgFilesFailedToProcess, errorCount)
	}
	return nil
}

// ProcessPath processes a manifest or a directory of manifests
func (g *formatter) ProcessPath(path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		g.config.FilePath = path
		return g.ProcessFile()
	}

	if !g.getInPlace() && !g.getCheck() {
		fmt.Fprintln(g.out, errmsg.WarnMsgProcessingDirWithoutInPlace)
		fmt.Fprint(g.out, errmsg.InfoMsgUseInPlaceFlag+"\n\n")
	}

	manifests, err := utils.FindManifests(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.ErrMsgFailedToFindManifests, err)
	}

	if len(manifests) == 0 {
		fmt.Fprintf(g.out, errmsg.InfoMsgNoManifestsFound+"\n", path)
		return nil
	}

	fmt.Fprintf(g.out, errmsg.InfoMsgFoundManifests+"\n\n", len(manifests), path)
	return g.ProcessFiles(manifests)
}
