// Package snap quantizes a continuous frequency to the nearest member of a
// candidate set and manages the named candidate sets ("snap packs") the
// instrument ships with.
//
// Zero is always a member of a Set: it is the "off" marker, since tones
// below 1 Hz are silent.
package snap
