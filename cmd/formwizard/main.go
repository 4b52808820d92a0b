package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "formwizard",
	Short: "Two-step registration wizard served over HTTP or the terminal",
	Long: `formwizard walks a visitor through a two-step registration form
(personal information, then location information) and creates an account
from the collected answers.

Settings are read from flags, FORMWIZARD_* environment variables and
./formwizard.yml, in that order.`,
	SilenceUsage: true,
}

var rootFlags struct {
	configFile string
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootFlags.configFile, "config", "c", "", "config file (default ./formwizard.yml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("dev", false, "development logging")
	flags.String("database", "", "SQLite database for accounts (empty keeps accounts in memory)")
	flags.String("username-policy", "preserve", "username policy: preserve, reject or sanitize")
	flags.String("email-domain", "", "domain used for generated email addresses")
	flags.String("steps", "", "JSON or YAML step document replacing the built-in steps")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(configCmd)
}
