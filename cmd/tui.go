package cmd

import (
	"github.com/spf13/cobra"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/app"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	rt, err := newRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Router: rt.router,
		Events: rt.store.EventRepo(),
	})
}
