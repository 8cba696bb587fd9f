package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brianndofor/diffhtml/internal/diff"
	"github.com/brianndofor/diffhtml/internal/store"
)

func NewRenderCmd() *cobra.Command {
	var (
		opts    renderOptions
		out     string
		pick    bool
		save    bool
		fromGit bool
		fromSvn bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-] | --git [git diff args] | --svn [svn diff args]",
		Short: "Render a composite diff as an HTML fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if fromGit && fromSvn {
				return fmt.Errorf("--git and --svn are mutually exclusive")
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
			if fromVCS == "" && len(args) > 1 {
				return fmt.Errorf("expected at most one input file, got %d", len(args))
			}

			src, err := readSource(cmd.Context(), app, cmd.InOrStdin(), args, fromVCS)
			if err != nil {
				return err
			}
			text := src.text
			if pick {
				text, err = pickSections(app, text, opts)
				if err != nil {
					return err
				}
				if text == "" {
					return nil
				}
			}

			report, err := app.convert(text, opts)
			if err != nil {
				return err
			}
			if err := app.writeTo(cmd.OutOrStdout(), out, report, opts); err != nil {
				return err
			}
			if save {
				return saveReport(cmd, app, src, text, report, opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.vcs, "vcs", "", "Diff flavor: git|svn (default from config)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Prefix prepended to every file name")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Render file sections in parallel")
	cmd.Flags().BoolVar(&opts.redact, "redact", false, "Redact secrets in diff content")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Emit a full HTML document")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose file sections interactively before rendering")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the rendered report")
	cmd.Flags().BoolVar(&fromGit, "git", false, "Run git diff with the remaining args")
	cmd.Flags().BoolVar(&fromSvn, "svn", false, "Run svn diff with the remaining args")

	return cmd
}

func saveReport(cmd *cobra.Command, app *App, src source, text string, report *diff.Report, opts renderOptions) error {
	st, err := app.Store()
	if err != nil {
		return err
	}
	variant, err := app.variant(opts)
	if err != nil {
		return err
	}
	prefix := app.filePrefix(opts)
	added, removed := report.Totals()
	id := store.ReportID(text, prefix)
	if err := st.SaveReport(store.Report{
		ID:         id,
		Source:     src.label,
		VCS:        variant.Name,
		FilePrefix: prefix,
		Added:      added,
		Removed:    removed,
		Files:      report.Files,
		HTML:       report.HTML,
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved report %s\n", id)
	return nil
}
