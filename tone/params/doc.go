// Package params defines the control parameters of the tone generator: their
// persisted identifiers, ranges and defaults, and a lock-free mailbox that
// carries updates from a control goroutine to the audio goroutine.
package params
