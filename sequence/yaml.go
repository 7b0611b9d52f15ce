package sequence

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Steps []yamlStep `yaml:"steps"`
}

type yamlStep struct {
	Op        string `yaml:"op"`
	Text      string `yaml:"text"`
	Delay     string `yaml:"delay"`
	State     string `yaml:"state"`
	Target    string `yaml:"target"`
	Direction string `yaml:"direction"`
}

// ParseYAML parses a YAML sequence document from any io.Reader.
func ParseYAML(r io.Reader) ([]Step, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no steps found in document")
		}
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}

	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("no steps found in document")
	}

	steps := make([]Step, 0, len(doc.Steps))
	for i, ys := range doc.Steps {
		if err := ys.checkFields(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		step, err := buildStep(ys.Op, ys.Text, ys.args())
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// checkFields rejects fields that the step's op does not use.
// Unknown ops are left to buildStep.
func (s yamlStep) checkFields() error {
	var allowed []string
	switch strings.ToLower(s.Op) {
	case "write":
		allowed = []string{"text"}
	case "wait", "sleep":
		allowed = []string{"delay"}
	case "backlight":
		allowed = []string{"state"}
	case "shift":
		allowed = []string{"target", "direction"}
	}

	fields := []struct {
		name  string
		value string
	}{
		{"text", s.Text},
		{"delay", s.Delay},
		{"state", s.State},
		{"target", s.Target},
		{"direction", s.Direction},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		used := false
		for _, a := range allowed {
			if a == f.name {
				used = true
			}
		}
		if !used {
			return fmt.Errorf("field %q does not apply to op %q", f.name, s.Op)
		}
	}
	return nil
}

// args flattens the optional fields into script-style arguments.
func (s yamlStep) args() []string {
	var args []string
	for _, v := range []string{s.State, s.Target, s.Direction, s.Delay} {
		if v != "" {
			args = append(args, v)
		}
	}
	return args
}
