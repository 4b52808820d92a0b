package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/steps"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		stepsFlags.openapi = ""
		stepsFlags.schema = "Registration"
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStepsCommand_PrintsBuiltInSteps(t *testing.T) {
	out, err := execute(t, "steps")
	require.NoError(t, err)

	registry, err := steps.Parse([]byte(out), "stdout")
	require.NoError(t, err)
	assert.Equal(t, steps.Registration().Definitions(), registry.Definitions())
}

func TestStepsCommand_FromOpenAPI(t *testing.T) {
	doc := filepath.Join("..", "..", "pkg", "steps", "testdata", "registration_openapi.yaml")

	out, err := execute(t, "steps", "--openapi", doc, "--schema", "Registration")
	require.NoError(t, err)

	registry, err := steps.Parse([]byte(out), "stdout")
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Count())
}

func TestLoadRegistry(t *testing.T) {
	registry, err := loadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, steps.Registration().Count(), registry.Count())

	raw, err := steps.Marshal(registry)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := loadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, registry.Definitions(), loaded.Definitions())

	_, err = loadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formwizard.yml")

	out, err := execute(t, "config", "init", path, "--username-policy", "sanitize")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "username_policy: sanitize")

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err)
}

type syncRecorder struct {
	bytes.Buffer
	syncs int
}

func (s *syncRecorder) Sync() error {
	s.syncs++
	return nil
}

func TestNewApp_FlushesLoggerOnSetupFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cases := map[string][]string{
		"missing steps file": {"--steps", filepath.Join(t.TempDir(), "missing.yaml")},
		"unusable database":  {"--database", filepath.Join(blocker, "sub", "accounts.db")},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().String("steps", "", "")
			cmd.Flags().String("database", "", "")
			require.NoError(t, cmd.Flags().Parse(args))

			rec := &syncRecorder{}
			_, err := newApp(cmd, func(*config.Config) (*zap.Logger, error) {
				core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), rec, zapcore.DebugLevel)
				return zap.New(core), nil
			})
			require.Error(t, err)
			assert.Equal(t, 1, rec.syncs)
		})
	}
}
