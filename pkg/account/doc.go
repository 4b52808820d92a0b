// Package account turns a completed wizard state into an account creation
// request and hands it to a Store. Storage failures are reported back as
// notices; nothing is retried or rolled back.
package account
