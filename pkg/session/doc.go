// Package session wires the wizard pieces together for one user: the state,
// the pending notices, navigation, rendering descriptions and account
// creation. Transports and terminal front ends drive a Session; Store keeps
// the live sessions of a server process in memory.
package session
