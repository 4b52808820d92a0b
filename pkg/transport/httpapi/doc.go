// Package httpapi exposes wizard sessions over HTTP. A GET opens a session
// and returns the full page; each POST applies one navigation action and
// returns the replacement form and messages regions as JSON, or the full page
// again for clients that do not ask for JSON.
package httpapi
