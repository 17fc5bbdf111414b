// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package model reads transition systems over integer variables from YAML
// files and compiles them into homomorphisms on decision diagrams.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrInvalidModel is returned when a model file is well-formed YAML but does
// not describe a valid transition system.
var ErrInvalidModel = errors.New("model: invalid model")

// Model is a transition system over a fixed list of integer variables. The
// order of the variables is the order of the levels in the decision diagram.
type Model struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Variables   []Variable   `yaml:"variables"`
	Transitions []Transition `yaml:"transitions"`
}

// Variable declares a variable with its initial value and optional bounds.
// Bounds are not enforced; they are the properties checked by System.Check.
type Variable struct {
	Name string `yaml:"name"`
	Init int    `yaml:"init"`
	Min  *int   `yaml:"min,omitempty"`
	Max  *int   `yaml:"max,omitempty"`
}

// Transition is a guarded update. Each guard is a conjunction of linear
// comparisons, such as "x < 3 && y == x + 1"; each assignment has the form
// "x = e", "x += e" or "x -= e" with e a linear expression. Assignments are
// simultaneous.
type Transition struct {
	Name   string   `yaml:"name"`
	Guard  []string `yaml:"guard,omitempty"`
	Assign []string `yaml:"assign,omitempty"`
}

var identRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Load reads and parses a model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a model from YAML. Unknown fields are rejected, to catch
// typos like "guards:" instead of "guard:".
func Parse(data []byte) (*Model, error) {
	var m Model
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Model) validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidModel)
	}
	if len(m.Variables) == 0 {
		return fmt.Errorf("%w: variables list is required and must be non-empty", ErrInvalidModel)
	}
	seen := make(map[string]bool, len(m.Variables))
	for k, v := range m.Variables {
		if !identRegex.MatchString(v.Name) {
			return fmt.Errorf("%w: variable %d has invalid name %q", ErrInvalidModel, k, v.Name)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: variable %q declared twice", ErrInvalidModel, v.Name)
		}
		seen[v.Name] = true
		if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
			return fmt.Errorf("%w: variable %q has min %d greater than max %d", ErrInvalidModel, v.Name, *v.Min, *v.Max)
		}
	}
	names := make(map[string]bool, len(m.Transitions))
	for k, t := range m.Transitions {
		if t.Name == "" {
			return fmt.Errorf("%w: transition %d has no name", ErrInvalidModel, k)
		}
		if names[t.Name] {
			return fmt.Errorf("%w: transition %q declared twice", ErrInvalidModel, t.Name)
		}
		names[t.Name] = true
	}
	return nil
}

// Names returns the names of the variables, in level order.
func (m *Model) Names() []string {
	res := make([]string, len(m.Variables))
	for k, v := range m.Variables {
		res[k] = v.Name
	}
	return res
}

// Init returns the initial state of the model.
func (m *Model) Init() []int {
	res := make([]int, len(m.Variables))
	for k, v := range m.Variables {
		res[k] = v.Init
	}
	return res
}
