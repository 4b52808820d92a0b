package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/steps"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the step document the wizard runs",
	Long: `Print the active step document as YAML. With --openapi the steps are
derived from a component schema of an OpenAPI 3 document instead; the
output can be saved and passed back with --steps.`,
	Args: cobra.NoArgs,
	RunE: runSteps,
}

var stepsFlags struct {
	openapi string
	schema  string
}

func init() {
	stepsCmd.Flags().StringVar(&stepsFlags.openapi, "openapi", "", "OpenAPI 3 document to derive the steps from")
	stepsCmd.Flags().StringVar(&stepsFlags.schema, "schema", "Registration", "component schema used with --openapi")
}

func runSteps(cmd *cobra.Command, _ []string) error {
	var (
		registry *steps.Registry
		err      error
	)
	if stepsFlags.openapi != "" {
		raw, readErr := os.ReadFile(stepsFlags.openapi)
		if readErr != nil {
			return fmt.Errorf("reading openapi document: %w", readErr)
		}
		registry, err = steps.FromOpenAPI(cmd.Context(), raw, stepsFlags.schema)
	} else {
		path, _ := cmd.Flags().GetString("steps")
		registry, err = loadRegistry(path)
	}
	if err != nil {
		return err
	}

	out, err := steps.Marshal(registry)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
