package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/toba/gosh/internal/builtin"
	"github.com/toba/gosh/internal/doctor"
)

var jsonOut bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the shell environment is healthy",
	Long:  "Inspect HOME, the PATH search directories, and the terminal, and report anything that would degrade the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := doctor.Collect()
		if jsonOut {
			if err := doctor.RenderJSON(os.Stdout, report); err != nil {
				return err
			}
		} else {
			doctor.RenderText(os.Stdout, report)
		}
		if !report.Healthy() {
			return builtin.ExitError{Code: 1}
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	rootCmd.AddCommand(doctorCmd)
}
