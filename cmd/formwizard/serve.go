package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/session"
	"github.com/goliatone/go-formwizard/pkg/transport/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wizard over HTTP",
	Long: `Serve the registration wizard. GET /wizard starts a session and
returns the first step; POST /wizard/{id} applies an action. Requests
that accept JSON get the form and message fragments back for in-place
updates.`,
	RunE: runServe,
}

var serveFlags struct {
	secureCookie bool
	sweep        time.Duration
}

func init() {
	flags := serveCmd.Flags()
	flags.String("addr", ":8383", "listen address")
	flags.Duration("grace", 5*time.Second, "graceful shutdown timeout")
	flags.Duration("session-ttl", 30*time.Minute, "idle session lifetime (0 keeps sessions forever)")
	flags.String("theme", "", "theme name exposed to the page templates")
	flags.BoolVar(&serveFlags.secureCookie, "secure-cookie", false, "mark the session cookie Secure")
	flags.DurationVar(&serveFlags.sweep, "sweep-interval", time.Minute, "how often expired sessions are dropped")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	renderer, err := vanilla.New(vanilla.WithTheme(rendererTheme(a.cfg.Theme)))
	if err != nil {
		return err
	}

	sessions := session.NewStore(a.runtime, session.WithTTL(a.cfg.SessionTTL))
	handler := httpapi.New(sessions, renderer,
		httpapi.WithLogger(a.logger),
		httpapi.WithSecureCookie(serveFlags.secureCookie),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.SessionTTL > 0 && serveFlags.sweep > 0 {
		go sweepSessions(ctx, sessions, serveFlags.sweep, a.logger)
	}

	return httpapi.ListenAndServe(ctx, a.cfg.Addr, handler, a.cfg.ShutdownGrace, a.logger)
}

func sweepSessions(ctx context.Context, sessions *session.Store, every time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				logger.Debug("expired sessions dropped", zap.Int("count", n), zap.Int("open", sessions.Len()))
			}
		}
	}
}

func rendererTheme(t config.Theme) *theme.RendererConfig {
	if t.Name == "" && t.Variant == "" && len(t.Tokens) == 0 && len(t.CSSVars) == 0 {
		return nil
	}
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  t.Tokens,
		CSSVars: t.CSSVars,
	}
}
