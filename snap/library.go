package snap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownPack is returned when no pack has the requested name.
	ErrUnknownPack = errors.New("snap: unknown pack")
	// ErrBuiltInPack is returned when a built-in pack would be modified.
	ErrBuiltInPack = errors.New("snap: built-in packs are read-only")
	// ErrPackExists is returned when a name is already taken.
	ErrPackExists = errors.New("snap: pack already exists")
	// ErrInvalidFrequency is returned for negative or non-finite frequencies.
	ErrInvalidFrequency = errors.New("snap: frequency must be finite and >= 0")
)

// DefaultPack is the pack selected on startup.
const DefaultPack = "Solfeggio (Default)"

type builtIn struct {
	name  string
	freqs []float64
}

var builtIns = []builtIn{
	{"Deep Sleep", []float64{0, 40, 50, 62, 108, 120, 136.1, 174, 285}},
	{DefaultPack, []float64{0, 174, 285, 396, 417, 528, 639, 741, 852, 963}},
	{"Mood Lifter", []float64{0, 136.1, 528, 963}},
	{"Anxiety Buster", []float64{0, 111, 136.1, 396, 417, 444, 528, 639, 741}},
	{"Focus Mode", []float64{0, 40, 144.72, 888, 963}},
}

// DefaultFrequencies returns the members of DefaultPack.
func DefaultFrequencies() []float64 {
	return slices.Clone(builtIns[1].freqs)
}

// Library holds the built-in packs and any user packs. It is safe for
// concurrent use.
type Library struct {
	mu   sync.RWMutex
	user map[string][]float64
}

// NewLibrary returns a library with the built-in packs and no user packs.
func NewLibrary() *Library {
	return &Library{user: make(map[string][]float64)}
}

// Names lists built-in packs in their fixed order followed by user packs
// sorted by name.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(builtIns)+len(l.user))
	for _, b := range builtIns {
		names = append(names, b.name)
	}
	user := make([]string, 0, len(l.user))
	for name := range l.user {
		user = append(user, name)
	}
	sort.Strings(user)
	return append(names, user...)
}

// IsBuiltIn reports whether name is one of the shipped packs.
func (l *Library) IsBuiltIn(name string) bool {
	return findBuiltIn(name) != nil
}

// Pack returns a copy of the frequencies of the named pack.
func (l *Library) Pack(name string) ([]float64, error) {
	if b := findBuiltIn(name); b != nil {
		return slices.Clone(b.freqs), nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	freqs, ok := l.user[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPack, name)
	}
	return slices.Clone(freqs), nil
}

// Set returns the named pack as a snap Set.
func (l *Library) Set(name string) (*Set, error) {
	freqs, err := l.Pack(name)
	if err != nil {
		return nil, err
	}
	return NewSet(freqs), nil
}

// Create adds an empty user pack named "New Pack N" with the first free N and
// returns its name.
func (l *Library) Create() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := l.uniqueLocked("New Pack", 1)
	l.user[name] = []float64{}
	return name
}

// Copy duplicates any pack into a new user pack named "<name> Copy N".
func (l *Library) Copy(name string) (string, error) {
	freqs, err := l.Pack(name)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	newName := l.uniqueLocked(name+" Copy", 1)
	l.user[newName] = freqs
	return newName, nil
}

// Rename renames a user pack.
func (l *Library) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("snap: pack name must not be empty")
	}
	if findBuiltIn(oldName) != nil {
		return fmt.Errorf("%w: %q", ErrBuiltInPack, oldName)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	freqs, ok := l.user[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPack, oldName)
	}
	if newName == oldName {
		return nil
	}
	if l.takenLocked(newName) {
		return fmt.Errorf("%w: %q", ErrPackExists, newName)
	}
	delete(l.user, oldName)
	l.user[newName] = freqs
	return nil
}

// Delete removes a user pack.
func (l *Library) Delete(name string) error {
	if findBuiltIn(name) != nil {
		return fmt.Errorf("%w: %q", ErrBuiltInPack, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.user[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPack, name)
	}
	delete(l.user, name)
	return nil
}

// AddFrequency appends hz to a user pack, keeping it sorted high to low.
func (l *Library) AddFrequency(name string, hz float64) error {
	if hz < 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, hz)
	}
	if findBuiltIn(name) != nil {
		return fmt.Errorf("%w: %q", ErrBuiltInPack, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	freqs, ok := l.user[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPack, name)
	}
	freqs = append(freqs, hz)
	sort.Sort(sort.Reverse(sort.Float64Slice(freqs)))
	l.user[name] = freqs
	return nil
}

// RemoveFrequency deletes the first occurrence of hz from a user pack. It
// reports whether a member was removed.
func (l *Library) RemoveFrequency(name string, hz float64) (bool, error) {
	if findBuiltIn(name) != nil {
		return false, fmt.Errorf("%w: %q", ErrBuiltInPack, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	freqs, ok := l.user[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPack, name)
	}
	i := slices.Index(freqs, hz)
	if i < 0 {
		return false, nil
	}
	l.user[name] = slices.Delete(freqs, i, i+1)
	return true, nil
}

func (l *Library) takenLocked(name string) bool {
	if findBuiltIn(name) != nil {
		return true
	}
	_, ok := l.user[name]
	return ok
}

func (l *Library) uniqueLocked(prefix string, start int) string {
	for n := start; ; n++ {
		name := fmt.Sprintf("%s %d", prefix, n)
		if !l.takenLocked(name) {
			return name
		}
	}
}

func findBuiltIn(name string) *builtIn {
	for i := range builtIns {
		if builtIns[i].name == name {
			return &builtIns[i]
		}
	}
	return nil
}
