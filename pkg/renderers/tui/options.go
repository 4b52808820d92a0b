package tui

import "go.uber.org/zap"

// Theme captures optional prefixes applied when printing messages.
type Theme struct {
	TitlePrefix   string
	StatusPrefix  string
	WarningPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	TitlePrefix:   "== ",
	StatusPrefix:  "[ok] ",
	WarningPrefix: "[!] ",
	ErrorPrefix:   "[x] ",
}

// Option configures the renderer and runner.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger routes runner diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxRounds bounds how many screens Run shows before giving up. Zero
// means unbounded.
func WithMaxRounds(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxRounds = n
		}
	}
}
