package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brianndofor/diffhtml/internal/diff"
	"github.com/brianndofor/diffhtml/internal/page"
	"github.com/brianndofor/diffhtml/internal/redact"
)

// renderOptions are the per-invocation overrides shared by render, stat and
// watch. Zero values defer to the config.
type renderOptions struct {
	vcs     string
	prefix  string
	workers int
	redact  bool
	page    bool
}

// source is a composite diff and a label describing where it came from.
type source struct {
	text  string
	label string
}

// readSource reads a composite diff from the VCS when fromVCS names a
// variant, otherwise from the file in args or stdin.
func readSource(ctx context.Context, app *App, in io.Reader, args []string, fromVCS string) (source, error) {
	if fromVCS != "" {
		variant, err := diff.VariantByName(fromVCS)
		if err != nil {
			return source{}, err
		}
		if !app.Mock {
			if err := app.VCS.CheckInstalled(variant); err != nil {
				return source{}, err
			}
		}
		text, err := app.VCS.Diff(ctx, variant, args)
		if err != nil {
			return source{}, err
		}
		return source{text: text, label: strings.TrimSpace(variant.Name + " diff " + strings.Join(args, " "))}, nil
	}

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return source{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source{text: string(data), label: "stdin"}, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return source{}, fmt.Errorf("failed to read diff: %w", err)
	}
	return source{text: string(data), label: args[0]}, nil
}

func (a *App) variant(opts renderOptions) (diff.Variant, error) {
	name := opts.vcs
	if name == "" {
		name = a.Config.Render.VCS
	}
	return diff.VariantByName(name)
}

func (a *App) filePrefix(opts renderOptions) string {
	if opts.prefix != "" {
		return opts.prefix
	}
	return a.Config.Render.FilePrefix
}

func (a *App) converter(opts renderOptions) (*diff.Converter, error) {
	variant, err := a.variant(opts)
	if err != nil {
		return nil, err
	}
	workers := opts.workers
	if workers <= 0 {
		workers = a.Config.Render.Workers
	}
	theme := a.Config.Theme
	return diff.NewConverter(diff.Options{
		Variant:    variant,
		FilePrefix: a.filePrefix(opts),
		Theme: diff.Theme{
			AddedBackground:      theme.AddedBackground,
			RemovedBackground:    theme.RemovedBackground,
			RangeBackground:      theme.RangeBackground,
			LineNumberBackground: theme.LineNumberBackground,
			FontFamily:           theme.FontFamily,
		},
		Ignore:   a.Config.Render.Ignore,
		MaxFiles: a.Config.Render.MaxFiles,
		Workers:  workers,
		Logger:   a.Logger,
	})
}

// convert redacts the text when enabled and renders it.
func (a *App) convert(text string, opts renderOptions) (*diff.Report, error) {
	if opts.redact || a.Config.Redaction.Enabled {
		var n int
		text, n = redact.Diff(text)
		if n > 0 {
			a.Logger.Info("redacted secrets", "lines", n)
		}
	}
	c, err := a.converter(opts)
	if err != nil {
		return nil, err
	}
	return c.Convert(text)
}

// writeOutput writes the fragment, or the full page in page mode.
func (a *App) writeOutput(w io.Writer, report *diff.Report, opts renderOptions) error {
	if !opts.page {
		_, err := io.WriteString(w, report.HTML+"\n")
		return err
	}
	var intro string
	if a.Config.Page.Intro != "" {
		data, err := os.ReadFile(a.Config.Page.Intro)
		if err != nil {
			return fmt.Errorf("failed to read page intro: %w", err)
		}
		intro = string(data)
	}
	return page.Render(w, report.HTML, page.Options{
		Title: a.Config.Page.Title,
		Intro: intro,
		Files: report.Files,
	})
}

// writeTo renders into path, or into w when path is empty.
func (a *App) writeTo(w io.Writer, path string, report *diff.Report, opts renderOptions) error {
	if path == "" {
		return a.writeOutput(w, report, opts)
	}
	var b strings.Builder
	if err := a.writeOutput(&b, report, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
