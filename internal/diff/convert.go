package diff

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Variant selects the file header policy. The zero value means Git.
	Variant    Variant
	FilePrefix string
	// Theme fields left empty fall back to DefaultTheme.
	Theme Theme
	// Ignore holds doublestar globs matched against each section's Path.
	Ignore []string
	// MaxFiles caps the number of rendered sections when positive.
	MaxFiles int
	// Workers > 1 renders sections concurrently. Output is identical to the
	// sequential path.
	Workers int
	Logger  *slog.Logger
}

// FileReport describes one rendered section.
type FileReport struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Status   Status `json:"status"`
	Hunks    int    `json:"hunks"`
	Added    int    `json:"added"`
	Removed  int    `json:"removed"`
}

type Report struct {
	HTML  string       `json:"-"`
	Files []FileReport `json:"files"`
	// Errors holds per-section failures that were rendered as fallback
	// blocks.
	Errors []error `json:"-"`
}

func (r *Report) Totals() (added, removed int) {
	for _, f := range r.Files {
		added += f.Added
		removed += f.Removed
	}
	return added, removed
}

type Converter struct {
	opts     Options
	renderer *renderer
	logger   *slog.Logger
}

func NewConverter(opts Options) (*Converter, error) {
	if !opts.Variant.valid() {
		opts.Variant = Git
	}
	for _, glob := range opts.Ignore {
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("invalid ignore pattern %q", glob)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		opts:     opts,
		renderer: newRenderer(opts.Theme),
		logger:   logger,
	}, nil
}

// Render converts a composite diff with the given header policy and prefix.
func Render(composite string, v Variant, filePrefix string) (string, error) {
	c, err := NewConverter(Options{Variant: v, FilePrefix: filePrefix})
	if err != nil {
		return "", err
	}
	return c.Render(composite)
}

func (c *Converter) Render(composite string) (string, error) {
	report, err := c.Convert(composite)
	if err != nil {
		return "", err
	}
	return report.HTML, nil
}

// Convert renders every file section of composite into one list. Only a
// header without a filename fails the whole conversion; problems inside a
// section are confined to that section's block.
func (c *Converter) Convert(composite string) (*Report, error) {
	sections, err := Split(composite, c.opts.Variant, c.opts.FilePrefix)
	if err != nil {
		return nil, err
	}
	total := len(sections)
	sections = filterSections(sections, c.opts.Ignore, c.opts.MaxFiles)
	c.logger.Debug("split composite diff", "vcs", c.opts.Variant.Name, "sections", total, "rendered", len(sections))

	results := make([]sectionResult, len(sections))
	if c.opts.Workers > 1 && len(sections) > 1 {
		var g errgroup.Group
		g.SetLimit(c.opts.Workers)
		for i, section := range sections {
			g.Go(func() error {
				results[i] = c.renderSection(section)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, section := range sections {
			results[i] = c.renderSection(section)
		}
	}

	var b strings.Builder
	b.WriteString(listOpen)
	report := &Report{Files: make([]FileReport, 0, len(results))}
	for _, res := range results {
		b.WriteString(res.html)
		report.Files = append(report.Files, res.file)
		if res.err != nil {
			report.Errors = append(report.Errors, res.err)
		}
	}
	b.WriteString(listClose)
	report.HTML = b.String()
	return report, nil
}

type sectionResult struct {
	html string
	file FileReport
	err  error
}

func (c *Converter) renderSection(section FileSection) sectionResult {
	file := FileReport{
		Name:     section.Name,
		Path:     section.Path,
		Language: languageFor(section.Path),
	}
	res, err := parseFile(section, c.renderer)
	if err != nil {
		c.logger.Warn("rendering file as fallback", "file", section.Name, "err", err)
		file.Status = StatusInvalid
		return sectionResult{
			html: c.renderer.fallbackFile(section.Name, []string{err.Error()}),
			file: file,
			err:  fmt.Errorf("%s: %w", section.Name, err),
		}
	}
	switch res.status {
	case StatusMalformed:
		c.logger.Warn("file section has no ---/+++ markers", "file", section.Name)
	case StatusTruncated:
		c.logger.Warn("unrecognized line closed file early", "file", section.Name)
	}
	file.Status = res.status
	file.Hunks = res.hunks
	file.Added = res.added
	file.Removed = res.removed
	return sectionResult{html: res.html, file: file}
}

// languageFor names the language chroma associates with a path, or "".
func languageFor(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
