// Package template wraps a pongo2 template set behind a small engine used by
// the HTML renderer. Templates load from an fs.FS or a directory on disk and
// share one set of globals.
package template
