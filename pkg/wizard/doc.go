// Package wizard implements the multi-step wizard state machine.
//
// A State value records the 1-based position of the active step and the raw
// values entered for every visited step. The caller owns the State and threads
// it through Controller.Navigate for every intent (next, previous, submit).
// Navigate merges the submitted values for the active step, validates the
// fields in scope for the intent through the Gate, and either advances,
// retreats, completes, or rejects the transition. Rejections keep the typed
// values so the user never loses input; intents that are not available at the
// active step are reported as *ProtocolError and never touch the state.
package wizard
