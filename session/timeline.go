package session

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/cwbudde/algo-tonegen/tone/modifier"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

var (
	// ErrUnknownParameter is returned for parameter ids the processor does not know.
	ErrUnknownParameter = errors.New("session: unknown parameter")
	// ErrUnknownSlot is returned for modifier slots outside 0..3.
	ErrUnknownSlot = errors.New("session: unknown modifier slot")
	// ErrNegativeTime is returned for events scheduled before the start.
	ErrNegativeTime = errors.New("session: negative event time")
	// ErrInvalidValue is returned for NaN or infinite values.
	ErrInvalidValue = errors.New("session: value must be finite")
)

// Kind is the type of a scheduled event.
type Kind int

const (
	// KindSet changes a parameter.
	KindSet Kind = iota
	// KindEnable switches a modifier slot.
	KindEnable
	// KindSnap replaces the snap frequencies.
	KindSnap
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindEnable:
		return "enable"
	case KindSnap:
		return "snap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is one scheduled control change.
type Event struct {
	At      time.Duration
	Kind    Kind
	ID      string
	Value   float64
	Slot    int
	Enabled bool
	Snap    []float64
}

func (e Event) String() string {
	switch e.Kind {
	case KindSet:
		return fmt.Sprintf("%v set %s=%g", e.At, e.ID, e.Value)
	case KindEnable:
		return fmt.Sprintf("%v enable %s=%t", e.At, modifier.SlotName(e.Slot), e.Enabled)
	case KindSnap:
		return fmt.Sprintf("%v snap %v", e.At, e.Snap)
	default:
		return fmt.Sprintf("%v %v", e.At, e.Kind)
	}
}

// Timeline is an ordered list of events. Events with equal times keep the
// order in which they were added.
type Timeline struct {
	events []Event
	sorted bool
	length time.Duration
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{sorted: true}
}

// Set schedules a parameter change.
func (tl *Timeline) Set(at time.Duration, id string, v float64) error {
	if at < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTime, at)
	}
	if _, ok := params.Lookup(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidValue, id, v)
	}
	tl.add(Event{At: at, Kind: KindSet, ID: id, Value: v})
	return nil
}

// Enable schedules a modifier slot switch.
func (tl *Timeline) Enable(at time.Duration, slot int, enabled bool) error {
	if at < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTime, at)
	}
	if slot < 0 || slot >= modifier.NumSlots {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, slot)
	}
	tl.add(Event{At: at, Kind: KindEnable, Slot: slot, Enabled: enabled})
	return nil
}

// Snap schedules a replacement of the snap frequencies.
func (tl *Timeline) Snap(at time.Duration, freqs []float64) error {
	if at < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTime, at)
	}
	for _, f := range freqs {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return fmt.Errorf("%w: snap frequency %v", ErrInvalidValue, f)
		}
	}
	tl.add(Event{At: at, Kind: KindSnap, Snap: slices.Clone(freqs)})
	return nil
}

// Ramp schedules steps+1 evenly spaced changes of id from "from" to "to"
// between at and at+length.
func (tl *Timeline) Ramp(at time.Duration, id string, from, to float64, length time.Duration, steps int) error {
	if steps < 1 {
		steps = 1
	}
	if length < 0 {
		return fmt.Errorf("%w: ramp length %v", ErrNegativeTime, length)
	}
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		when := at + time.Duration(frac*float64(length))
		if err := tl.Set(when, id, from+(to-from)*frac); err != nil {
			return err
		}
	}
	return nil
}

// Events returns the events in time order.
func (tl *Timeline) Events() []Event {
	tl.sort()
	return slices.Clone(tl.events)
}

// Len returns the number of events.
func (tl *Timeline) Len() int { return len(tl.events) }

// SetLength extends the timeline past its last event, e.g. to hold the final
// state for a while. Negative lengths are ignored.
func (tl *Timeline) SetLength(d time.Duration) {
	tl.length = max(d, 0)
}

// End returns the time of the last event or the length set with SetLength,
// whichever is later.
func (tl *Timeline) End() time.Duration {
	end := tl.length
	for _, e := range tl.events {
		end = max(end, e.At)
	}
	return end
}

func (tl *Timeline) add(e Event) {
	if n := len(tl.events); n > 0 && tl.events[n-1].At > e.At {
		tl.sorted = false
	}
	tl.events = append(tl.events, e)
}

func (tl *Timeline) sort() {
	if tl.sorted {
		return
	}
	sort.SliceStable(tl.events, func(i, j int) bool {
		return tl.events[i].At < tl.events[j].At
	})
	tl.sorted = true
}
