// Package ambience generates procedural background textures: white and pink
// noise, wind, rain, ocean, forest and birds.
//
// A Generator owns all of its filter and phase state. State is cleared by
// Reset (and by SetSampleRate) but deliberately kept when the texture type
// changes, so switching types mid-stream may produce a short transient.
package ambience
