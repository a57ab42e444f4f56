// Package script runs animation scenarios described in YAML against an
// animated graph and records what the host would have seen, frame by
// frame. It backs the animctl command and scenario tests.
package script

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Step is a single action in a scenario.
type Step struct {
	Action string `yaml:"action"`
	// Value names the target value, or the ValueXY for drag.
	Value string  `yaml:"value,omitempty"`
	To    float64 `yaml:"to,omitempty"`

	// animate
	Driver string         `yaml:"driver,omitempty"`
	Config map[string]any `yaml:"config,omitempty"`

	// advance and drag
	Frames int           `yaml:"frames,omitempty"`
	DT     time.Duration `yaml:"dt,omitempty"`

	// drag
	Event string     `yaml:"event,omitempty"`
	From  [2]float64 `yaml:"from,omitempty"`
	ToXY  [2]float64 `yaml:"toXY,omitempty"`
}

// Interpolation declares an interpolation node.
type Interpolation struct {
	Name          string    `yaml:"name"`
	Input         string    `yaml:"input"`
	InputRange    []float64 `yaml:"inputRange"`
	OutputRange   []float64 `yaml:"outputRange,omitempty"`
	OutputStrings []string  `yaml:"outputStrings,omitempty"`
	Easing        string    `yaml:"easing,omitempty"`
	Extrapolate   string    `yaml:"extrapolate,omitempty"`
}

// Operation declares an arithmetic node. Op is one of add, subtract,
// multiply, divide, modulo and diffclamp.
type Operation struct {
	Name    string  `yaml:"name"`
	Op      string  `yaml:"op"`
	A       string  `yaml:"a"`
	B       string  `yaml:"b,omitempty"`
	Modulus float64 `yaml:"modulus,omitempty"`
	Min     float64 `yaml:"min,omitempty"`
	Max     float64 `yaml:"max,omitempty"`
}

// Script is the top-level scenario.
type Script struct {
	Name           string                       `yaml:"name,omitempty"`
	Values         map[string]float64           `yaml:"values"`
	Interpolations []Interpolation              `yaml:"interpolations,omitempty"`
	Operations     []Operation                  `yaml:"operations,omitempty"`
	Props          map[string]map[string]any    `yaml:"props,omitempty"`
	Listen         []string                     `yaml:"listen,omitempty"`
	Events         map[string]map[string]string `yaml:"events,omitempty"`
	Steps          []Step                       `yaml:"steps"`
}

var actions = map[string]bool{
	"set":     true,
	"offset":  true,
	"flatten": true,
	"extract": true,
	"animate": true,
	"stop":    true,
	"reset":   true,
	"advance": true,
	"idle":    true,
	"drag":    true,
}

// Parse decodes a YAML scenario and checks its steps.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !actions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i+1, st.Action)
		}
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return Parse(data)
}
