package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cwbudde/algo-tonegen/dsp/ambience"
	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone"
	"github.com/cwbudde/algo-tonegen/tone/modifier"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

const keyHelp = `keys:
  + -     frequency +/-1 Hz     > <   frequency +/-10 Hz
  ] [     volume +/-0.05        space on/off
  s       snap on/off           n p   next/previous snap pack
  g       cycle frequency range
  b r h a toggle binaural, breath, harmonic, atmosphere
  2..9    toggle harmonic order  t     next atmosphere texture
  o O     binaural offset +/-1 Hz
  q       quit`

// controller maps key presses to parameter changes on the processor.
type controller struct {
	proc   *tone.Processor
	lib    *snap.Library
	packs  []string
	pack   int
	ranges []snap.FrequencyRange
	rng    int
}

func newController(proc *tone.Processor, lib *snap.Library, pack string) (*controller, error) {
	packs := lib.Names()
	i := slices.Index(packs, pack)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", snap.ErrUnknownPack, pack)
	}
	ranges := snap.Ranges()
	def := snap.DefaultRange()
	return &controller{
		proc:   proc,
		lib:    lib,
		packs:  packs,
		pack:   i,
		ranges: ranges,
		rng:    slices.Index(ranges, def),
	}, nil
}

// handle applies key and reports whether the user asked to quit.
func (c *controller) handle(key byte) (quit bool) {
	switch key {
	case 'q', 'Q', 3: // Ctrl-C arrives as a byte in raw mode
		return true
	case '+', '=':
		c.nudgeFrequency(1)
	case '-', '_':
		c.nudgeFrequency(-1)
	case '>', '.':
		c.nudgeFrequency(10)
	case '<', ',':
		c.nudgeFrequency(-10)
	case ']':
		c.nudge(params.Volume, 0.05)
	case '[':
		c.nudge(params.Volume, -0.05)
	case ' ':
		c.toggle(params.IsOn)
	case 's':
		c.toggle(params.SnapOn)
	case 'n':
		c.selectPack(c.pack + 1)
	case 'p':
		c.selectPack(c.pack - 1)
	case 'g':
		c.rng = (c.rng + 1) % len(c.ranges)
		c.nudgeFrequency(0)
	case 'b':
		c.toggleSlot(modifier.SlotBinaural)
	case 'r':
		c.toggleSlot(modifier.SlotBreath)
	case 'h':
		c.toggleSlot(modifier.SlotHarmonic)
	case 'a':
		c.toggleSlot(modifier.SlotAtmosphere)
	case 't':
		next := (int(c.param(params.AtmoType)) + 1) % len(ambience.Types())
		c.proc.HandleParameterChanged(params.AtmoType, float64(next))
	case 'o':
		c.nudge(params.BinauralOffset, 1)
	case 'O':
		c.nudge(params.BinauralOffset, -1)
	default:
		if key >= '2' && key <= '9' {
			c.toggle(params.HarmonicID(int(key - '0')))
		}
	}
	return false
}

func (c *controller) param(id string) float64 {
	v, _ := c.proc.Parameter(id)
	return v
}

func (c *controller) nudge(id string, delta float64) {
	c.proc.HandleParameterChanged(id, c.param(id)+delta)
}

func (c *controller) nudgeFrequency(delta float64) {
	hz := c.ranges[c.rng].Clamp(c.param(params.FreeFrequency) + delta)
	c.proc.HandleParameterChanged(params.FreeFrequency, hz)
}

func (c *controller) toggle(id string) {
	c.proc.HandleParameterChanged(id, params.BoolValue(!params.Bool(c.param(id))))
}

func (c *controller) toggleSlot(slot int) {
	c.proc.SetModifierEnabled(slot, !c.proc.IsModifierEnabled(slot))
}

func (c *controller) selectPack(i int) {
	n := len(c.packs)
	c.pack = ((i % n) + n) % n
	freqs, err := c.lib.Pack(c.packs[c.pack])
	if err != nil {
		return
	}
	c.proc.SetSnapFrequencies(freqs)
}

// status renders a single status line.
func (c *controller) status() string {
	var b strings.Builder
	power := "ON"
	if !params.Bool(c.param(params.IsOn)) {
		power = "OFF"
	}
	fmt.Fprintf(&b, "%s %s vol %.2f", power, snap.FormatFrequency(c.param(params.FreeFrequency)), c.param(params.Volume))
	if params.Bool(c.param(params.SnapOn)) {
		fmt.Fprintf(&b, " snap[%s]", c.packs[c.pack])
	}
	fmt.Fprintf(&b, " range %s", c.ranges[c.rng].Label())

	var mods []string
	for slot := 0; slot < modifier.NumSlots; slot++ {
		if !c.proc.IsModifierEnabled(slot) {
			continue
		}
		switch slot {
		case modifier.SlotBinaural:
			mods = append(mods, fmt.Sprintf("binaural %+.1f Hz w %+.2f", c.proc.OffsetHz(), c.proc.DisplayWidth()))
		case modifier.SlotHarmonic:
			var orders []string
			for _, id := range params.HarmonicIDs {
				if params.Bool(c.param(id)) {
					order, _, _ := params.ParseHarmonic(id)
					orders = append(orders, fmt.Sprint(order))
				}
			}
			mods = append(mods, "harmonic "+strings.Join(orders, ","))
		case modifier.SlotAtmosphere:
			mods = append(mods, "atmosphere "+ambience.TypeFromValue(c.param(params.AtmoType)).String())
		default:
			mods = append(mods, modifier.SlotName(slot))
		}
	}
	if len(mods) > 0 {
		b.WriteString(" | " + strings.Join(mods, " | "))
	}
	return b.String()
}
