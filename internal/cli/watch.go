package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/brianndofor/diffhtml/internal/watch"
)

func NewWatchCmd() *cobra.Command {
	var (
		opts     renderOptions
		out      string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <file> --out <file>",
		Short: "Re-render a diff file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if debounce <= 0 {
				debounce = time.Duration(app.Config.Watch.DebounceMS) * time.Millisecond
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, writing %s\n", args[0], out)
			w := watch.New(args[0], debounce, app.Logger)
			return w.Run(ctx, func() error {
				return renderFile(app, args[0], out, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.vcs, "vcs", "", "Diff flavor: git|svn (default from config)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Prefix prepended to every file name")
	cmd.Flags().BoolVar(&opts.redact, "redact", false, "Redact secrets in diff content")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Emit a full HTML document")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-rendering (default from config)")

	return cmd
}

// renderFile renders the diff at in and writes the result to out.
func renderFile(app *App, in, out string, opts renderOptions) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read diff: %w", err)
	}
	report, err := app.convert(string(data), opts)
	if err != nil {
		return err
	}
	return app.writeTo(nil, out, report, opts)
}
