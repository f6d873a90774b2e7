package game

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ScriptStep holds one intent for a number of ticks
type ScriptStep struct {
	Ticks  int `yaml:"ticks"`
	Intent `yaml:",inline"`
}

// Script is a recorded input sequence for headless runs, loaded from YAML:
//
//	dt: 20
//	steps:
//	  - {ticks: 10, right: true}
//	  - {ticks: 6, jump: true, right: true}
type Script struct {
	// Dt is the tick length in ms; 0 means use the caller's default
	Dt    int64        `yaml:"dt"`
	Steps []ScriptStep `yaml:"steps"`
}

// ReadScript parses a YAML input script
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.Dt < 0 {
		return nil, fmt.Errorf("script dt %d must not be negative", s.Dt)
	}
	for i, st := range s.Steps {
		if st.Ticks < 0 {
			return nil, fmt.Errorf("script step %d: ticks %d must not be negative", i, st.Ticks)
		}
	}
	return &s, nil
}

// LoadScript reads a YAML input script from disk
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", path, err)
	}
	defer f.Close()
	s, err := ReadScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// TotalTicks returns the number of ticks the script covers
func (s *Script) TotalTicks() int {
	total := 0
	for _, st := range s.Steps {
		total += st.Ticks
	}
	return total
}

// ScriptedInput replays a Script one tick at a time
type ScriptedInput struct {
	steps     []ScriptStep
	step      int
	tick      int
	jumpSpent bool
}

// NewScriptedInput creates a provider that replays the script
func NewScriptedInput(s *Script) *ScriptedInput {
	return &ScriptedInput{steps: s.Steps}
}

// Done reports whether every step has been replayed
func (p *ScriptedInput) Done() bool {
	p.skipEmpty()
	return p.step >= len(p.steps)
}

func (p *ScriptedInput) skipEmpty() {
	for p.step < len(p.steps) && p.tick >= p.steps[p.step].Ticks {
		p.step++
		p.tick = 0
	}
}

// Sample returns the current step's intent and advances one tick.
// Past the end of the script every control is released.
func (p *ScriptedInput) Sample() Intent {
	p.skipEmpty()
	if p.step >= len(p.steps) {
		p.jumpSpent = false
		return Intent{}
	}
	in := p.steps[p.step].Intent
	p.tick++
	if !in.Jump {
		p.jumpSpent = false
	}
	in.Jump = in.Jump && !p.jumpSpent
	return in
}

// ExhaustJump keeps jump off until a step releases it
func (p *ScriptedInput) ExhaustJump() {
	p.jumpSpent = true
}
