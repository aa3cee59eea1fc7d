// Package modifier implements the signal modifiers that shape the generated
// tone: binaural stereo parameters, the breath gain envelope, the additive
// harmonic bank and the atmosphere texture layer.
//
// An Engine owns one instance of each and runs them in a fixed order. All
// modifiers are driven from a single audio goroutine; only the enable flags
// may be toggled concurrently.
package modifier
