// Package view turns wizard state into a render-neutral Description: the
// active step's fields with their pre-filled values, the buttons offered at
// that step and the messages to show. Renderers in pkg/renderers consume the
// Description; nothing in this package writes markup.
package view
