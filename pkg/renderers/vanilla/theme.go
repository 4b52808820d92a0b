package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type rendererTheme struct {
	Name     string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	CSSStyle string
}

func (t rendererTheme) context() map[string]any {
	return map[string]any{
		"name":    t.Name,
		"variant": t.Variant,
		"tokens":  t.Tokens,
		"css":     t.CSSStyle,
	}
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	vars := copyStringMap(cfg.CSSVars)
	// Tokens without an explicit CSS variable are exposed as --<token>.
	for key, value := range cfg.Tokens {
		name := "--" + strings.TrimPrefix(key, "--")
		if vars == nil {
			vars = make(map[string]string)
		}
		if _, ok := vars[name]; !ok {
			vars[name] = value
		}
	}
	return rendererTheme{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Tokens:   copyStringMap(cfg.Tokens),
		CSSVars:  vars,
		CSSStyle: cssVarsStyle(vars),
	}
}

func themeAssetResolver(cfg *theme.RendererConfig) func(string) string {
	if cfg == nil {
		return nil
	}
	return cfg.AssetURL
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

// cssVarsStyle renders vars as a :root rule. Values containing characters
// that could close the rule or the style element are dropped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.ContainsAny(key+vars[key], "{}<>;") {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
