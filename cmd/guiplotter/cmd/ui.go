package cmd

import (
	"github.com/spf13/cobra"

	"github.com/iafilius/GUIPlotter/cmd/guiplotter/viewer"
)

var uiCmd = &cobra.Command{
	Use:   "ui [file]...",
	Short: "Launch the interactive plotter",
	Long: `Open the plotting window. Files given on the command line are loaded before the
window is shown; more can be opened from the Data panel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := tableLoader()
		if err != nil {
			return err
		}
		w, h := chartSize()
		return viewer.Run(viewer.Options{Files: args, Loader: l, Width: w, Height: h})
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
