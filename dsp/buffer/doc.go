// Package buffer provides a planar multichannel float64 buffer and the
// compositing operations the tone engine uses to combine signals: copying a
// mono signal into every channel, summing layers, applying a per-frame gain
// envelope and a master gain.
//
// A Buffer sized once with New or Resize is reused block after block without
// further allocation as long as the requested size stays within the
// capacity it was created with.
package buffer
