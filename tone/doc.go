// Package tone is the tone generator core. A Processor turns control
// parameters into audio blocks: a free-running base tone that is either
// snapped to a set of target frequencies and shaped by the modifier chain of
// package modifier, or split into a binaural pair. Both paths carry the
// harmonic layer.
//
// ProcessBlock is meant for a single real-time goroutine and does not
// allocate or lock once the processor is prepared. Parameter updates, slot
// toggles and snap-set swaps may come from any goroutine.
package tone
