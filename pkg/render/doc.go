// Package render defines the contract rendering collaborators implement and a
// registry to look them up by name.
package render
