package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "diffhtml",
		Short:         "Render unified diffs as inline-styled HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(configPath, verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Override config path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(NewRenderCmd())
	root.AddCommand(NewStatCmd())
	root.AddCommand(NewWatchCmd())
	root.AddCommand(NewReportsCmd())
	root.AddCommand(NewDoctorCmd())
	root.AddCommand(NewConfigCmd())

	return root
}
