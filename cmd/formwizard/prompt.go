package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill in the wizard interactively in the terminal",
	RunE:  runPrompt,
}

var promptFlags struct {
	maxRounds int
}

func init() {
	promptCmd.Flags().IntVar(&promptFlags.maxRounds, "max-rounds", 0, "give up after this many screens (0 means no limit)")
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	// Logs go to stderr as JSON so they never interleave with the prompts.
	a, err := newApp(cmd, func(cfg *config.Config) (*zap.Logger, error) {
		return logging.NewWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	})
	if err != nil {
		return err
	}
	defer a.Close()

	renderer := tui.New(
		tui.WithLogger(a.logger),
		tui.WithMaxRounds(promptFlags.maxRounds),
	)
	current := a.runtime.Start(uuid.NewString())

	result, err := renderer.Run(cmd.Context(), current)
	if err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("account not created: %w", result.Err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "account %s created for %s <%s>\n",
		result.ID, result.Request.Username(), result.Request.Email())
	return nil
}
