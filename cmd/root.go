package cmd

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toba/gosh/internal/builtin"
	"github.com/toba/gosh/internal/config"
	"github.com/toba/gosh/internal/repl"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "gosh",
	Short:         "Interactive POSIX-flavored shell",
	Long:          "gosh is an interactive shell with POSIX-style quoting, pipelines, I/O redirection, and tab completion over builtins and PATH executables.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath())
		if err != nil {
			return err
		}
		return repl.New(cfg).Run()
	},
}

func init() {
	addConfigFlag(rootCmd.PersistentFlags())
}

func addConfigFlag(fs *pflag.FlagSet) {
	fs.StringVar(&cfgPath, "config", "", "path to config file (default ~/.gosh.yaml)")
}

// Execute runs the root command. An ExitError from the shell becomes
// the process exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr builtin.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configPath() string {
	return cmp.Or(cfgPath, config.DefaultPath())
}
