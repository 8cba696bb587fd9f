package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/brianndofor/diffhtml/internal/config"
	"github.com/brianndofor/diffhtml/internal/diff"
)

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check VCS tools, configuration and the report store",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "diffhtml doctor")

			// Missing VCS tools only limit --git/--svn input.
			for _, v := range []diff.Variant{diff.Git, diff.Svn} {
				version, err := app.VCS.Version(ctx, v)
				if err != nil {
					fmt.Fprintf(out, "- %s: not available\n", v.Name)
					continue
				}
				fmt.Fprintf(out, "- %s: ok (%s)\n", v.Name, version)
			}

			var failed []error
			for _, path := range []string{config.UserConfigPath(app.ConfigPath), filepath.Join(".", config.RepoConfigFile)} {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				if err := config.ValidateFile(path); err != nil {
					fmt.Fprintf(out, "- config %s: failed\n", path)
					failed = append(failed, err)
					continue
				}
				fmt.Fprintf(out, "- config %s: ok\n", path)
			}

			st, err := app.Store()
			if err == nil {
				err = st.Ping()
			}
			if err != nil {
				fmt.Fprintln(out, "- store: failed")
				failed = append(failed, err)
			} else {
				fmt.Fprintln(out, "- store: ok")
			}

			if len(failed) > 0 {
				return errors.Join(failed...)
			}
			fmt.Fprintln(out, "doctor checks passed")
			return nil
		},
	}
	return cmd
}
