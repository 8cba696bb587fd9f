package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/brianndofor/diffhtml/internal/diff"
)

func NewStatCmd() *cobra.Command {
	var (
		opts    renderOptions
		format  string
		fromGit bool
		fromSvn bool
	)

	cmd := &cobra.Command{
		Use:   "stat [file|-]",
		Short: "Summarize the file sections of a composite diff",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			fromVCS := ""
			switch {
			case fromGit:
				fromVCS = "git"
			case fromSvn:
				fromVCS = "svn"
			}
			if fromVCS != "" && opts.vcs == "" {
				opts.vcs = fromVCS
			}
			src, err := readSource(cmd.Context(), app, cmd.InOrStdin(), args, fromVCS)
			if err != nil {
				return err
			}
			report, err := app.convert(src.text, opts)
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return writeStatJSON(cmd.OutOrStdout(), report)
			case "text", "":
				return writeStat(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&opts.vcs, "vcs", "", "Diff flavor: git|svn (default from config)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Prefix prepended to every file name")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	cmd.Flags().BoolVar(&fromGit, "git", false, "Run git diff with the remaining args")
	cmd.Flags().BoolVar(&fromSvn, "svn", false, "Run svn diff with the remaining args")

	return cmd
}

// writeStat prints one aligned row per file and a totals line. Styling only
// applies when w is a terminal.
func writeStat(w io.Writer, report *diff.Report) error {
	header := []string{"FILE", "STATUS", "LANGUAGE", "ADDED", "REMOVED"}
	rows := [][]string{header}
	for _, f := range report.Files {
		lang := f.Language
		if lang == "" {
			lang = "-"
		}
		rows = append(rows, []string{f.Name, string(f.Status), lang, "+" + strconv.Itoa(f.Added), "-" + strconv.Itoa(f.Removed)})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	r := lipgloss.NewRenderer(w)
	bold := r.NewStyle().Bold(true)
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
			} else {
				cells[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		line := strings.Join(cells, "  ")
		if n == 0 {
			line = bold.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	added, removed := report.Totals()
	_, err := fmt.Fprintf(w, "%d files changed, %d insertions(+), %d deletions(-)\n", len(report.Files), added, removed)
	return err
}

func writeStatJSON(w io.Writer, report *diff.Report) error {
	added, removed := report.Totals()
	payload := map[string]any{
		"files":   report.Files,
		"added":   added,
		"removed": removed,
	}
	var errs []string
	for _, err := range report.Errors {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		payload["errors"] = errs
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
