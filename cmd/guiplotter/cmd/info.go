package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Show the columns and row count of data files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := tableLoader()
		if err != nil {
			return err
		}
		tables, err := l.Load(args)
		if err != nil {
			return err
		}
		for _, t := range tables {
			showTable(os.Stdout, t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func showTable(w io.Writer, t *dataset.Table) {
	fmt.Fprintf(w, "Dataset: %s\n", t.Name())
	fmt.Fprintf(w, "Path: %s\n", t.Path())
	fmt.Fprintf(w, "Rows: %d\n", t.Rows())
	fmt.Fprintln(w, "Columns:")
	for _, name := range t.Columns() {
		c, _ := t.Column(name)
		kind := "text"
		if c.Numeric() {
			kind = "numeric"
		}
		fmt.Fprintf(w, "  %s (%s)\n", name, kind)
	}
	fmt.Fprintln(w)
}
