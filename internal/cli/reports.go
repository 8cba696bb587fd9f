package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brianndofor/diffhtml/internal/diff"
	"github.com/brianndofor/diffhtml/internal/store"
)

func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage archived renders",
	}
	cmd.AddCommand(newReportsListCmd())
	cmd.AddCommand(newReportsShowCmd())
	cmd.AddCommand(newReportsDeleteCmd())
	return cmd
}

func newReportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			st, err := app.Store()
			if err != nil {
				return err
			}
			reports, err := st.ListReports()
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports saved.")
				return nil
			}
			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d files  +%d -%d  %s\n",
					r.ID, r.CreatedAt.UTC().Format(time.RFC3339), len(r.Files), r.Added, r.Removed, r.Source)
			}
			return nil
		},
	}
}

func newReportsShowCmd() *cobra.Command {
	var (
		asPage bool
		out    string
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			st, err := app.Store()
			if err != nil {
				return err
			}
			r, err := st.GetReport(args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no report with id %s", args[0])
				}
				return err
			}
			report := &diff.Report{HTML: r.HTML, Files: r.Files}
			return app.writeTo(cmd.OutOrStdout(), out, report, renderOptions{page: asPage})
		},
	}
	cmd.Flags().BoolVar(&asPage, "page", false, "Emit a full HTML document")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to a file instead of stdout")
	return cmd
}

func newReportsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete report %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			st, err := app.Store()
			if err != nil {
				return err
			}
			if err := st.DeleteReport(args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no report with id %s", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
