// Package schema defines the typed step and field definitions a wizard is
// built from. Definitions are plain values: registries own them, validate them
// once at construction time and hand out copies afterwards. Field values are
// addressed by (StepID, field name) pairs rather than dotted paths, so callers
// never have to parse "step1.first_name" style keys.
package schema
