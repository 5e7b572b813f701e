// Package replay records race inputs with per-tick state digests and plays
// them back to check that a simulation is deterministic.
package replay

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var (
	ErrDesync      = errors.New("replay digest mismatch")
	ErrSlotCount   = errors.New("tick control count does not match crafts")
	ErrEmptyReplay = errors.New("replay has no crafts")
)

// Recording is a whole race: the setup needed to rebuild it and every tick.
// Recordings start when the countdown does.
type Recording struct {
	Session   string  `yaml:"session"`
	Track     string  `yaml:"track"`
	Options   int     `yaml:"options"`
	Laps      int     `yaml:"laps"`
	Countdown int32   `yaml:"countdown"`
	Crafts    []Craft `yaml:"crafts"`
	Ticks     []Tick  `yaml:"ticks"`
}

// Craft is one craft of the starting grid, listed in slot order. Controls
// are the ones held when the recording started.
type Craft struct {
	Slot     int    `yaml:"slot"`
	HoverID  int    `yaml:"hoverId"`
	Model    int    `yaml:"model"`
	Pilot    string `yaml:"pilot,omitempty"`
	Controls uint16 `yaml:"controls,omitempty"`
}

// Tick holds the duration simulated, the control bits of every slot and the
// combined digest of all crafts afterwards.
type Tick struct {
	Duration int32    `yaml:"d"`
	Controls []uint16 `yaml:"c,flow"`
	Digest   uint64   `yaml:"h"`
}

// Runner advances a rebuilt race by one tick and returns its digest.
type Runner interface {
	Step(duration int32, controls []uint16) (uint64, error)
}

// Record appends a tick. controls is copied.
func (r *Recording) Record(duration int32, controls []uint16, digest uint64) {
	r.Ticks = append(r.Ticks, Tick{
		Duration: duration,
		Controls: append([]uint16(nil), controls...),
		Digest:   digest,
	})
}

// Save writes the recording as YAML.
func (r *Recording) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	return enc.Close()
}

// Load reads a recording written by Save.
func Load(rd io.Reader) (*Recording, error) {
	var r Recording
	if err := yaml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	if len(r.Crafts) == 0 {
		return nil, ErrEmptyReplay
	}
	for i, t := range r.Ticks {
		if len(t.Controls) != len(r.Crafts) {
			return nil, fmt.Errorf("tick %d: %w", i, ErrSlotCount)
		}
	}
	return &r, nil
}

// Verify feeds every tick to run and stops at the first digest that differs
// from the recorded one.
func (r *Recording) Verify(run Runner) error {
	for i, t := range r.Ticks {
		got, err := run.Step(t.Duration, t.Controls)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if got != t.Digest {
			return fmt.Errorf("tick %d: %w: got %016x want %016x", i, ErrDesync, got, t.Digest)
		}
	}
	return nil
}
