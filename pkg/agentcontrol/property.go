package agentcontrol

import (
	"strconv"

	"github.com/pkg/errors"
)

// Exposed property names.
const (
	PropertyPower     = "power"
	PropertyProgram   = "program"
	PropertyKeyDown   = "keyDown"
	PropertyLeftDown  = "leftDown"
	PropertyRightDown = "rightDown"
)

// PropertyOptions carries host-facing metadata about a property.
type PropertyOptions struct {
	Type        string `json:"type"`
	Writable    bool   `json:"writable"`
	Description string `json:"description"`
}

// Property is an explicit registration descriptor for one session property:
// a getter, a setter taking the host's string representation, and options.
// The descriptor set is built once per session and handed to the host
// integration layer; the session core itself never depends on how the host
// surfaces properties.
type Property struct {
	Name    string
	Options PropertyOptions
	Get     func() interface{}
	Set     func(value string) error
}

// Properties builds the descriptor set for the session.
func (s *Session) Properties() []Property {
	return []Property{
		{
			Name: PropertyPower,
			Options: PropertyOptions{
				Type:        "boolean",
				Writable:    true,
				Description: "Power state of the peer; off runs the shutdown program, on wakes the peer",
			},
			Get: func() interface{} { return s.Power() },
			Set: func(value string) error {
				on, err := parseBoolValue(value)
				if err != nil {
					return err
				}
				return s.SetPower(on)
			},
		},
		{
			Name: PropertyProgram,
			Options: PropertyOptions{
				Type:        "string",
				Writable:    true,
				Description: "Remote program to run, as EXE|DIR|ARG1|ARG2|...",
			},
			Get: func() interface{} { return s.Program() },
			Set: s.SetProgram,
		},
		{
			Name: PropertyKeyDown,
			Options: PropertyOptions{
				Type:        "string",
				Writable:    true,
				Description: "Held key combination, as MOD+MOD+...+KEY; auto-released after the quiet period",
			},
			Get: func() interface{} { return s.KeyDown() },
			Set: s.SetKeyDown,
		},
		{
			Name: PropertyLeftDown,
			Options: PropertyOptions{
				Type:        "boolean",
				Writable:    true,
				Description: "Left mouse button held",
			},
			Get: func() interface{} { return s.LeftDown() },
			Set: func(value string) error {
				down, err := parseBoolValue(value)
				if err != nil {
					return err
				}
				return s.SetLeftDown(down)
			},
		},
		{
			Name: PropertyRightDown,
			Options: PropertyOptions{
				Type:        "boolean",
				Writable:    true,
				Description: "Right mouse button held",
			},
			Get: func() interface{} { return s.RightDown() },
			Set: func(value string) error {
				down, err := parseBoolValue(value)
				if err != nil {
					return err
				}
				return s.SetRightDown(down)
			},
		},
	}
}

// PropertyByName returns the descriptor for one property.
func (s *Session) PropertyByName(name string) (*Property, bool) {
	for _, p := range s.Properties() {
		if p.Name == name {
			prop := p
			return &prop, true
		}
	}
	return nil, false
}

func parseBoolValue(value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "invalid boolean property value %q", value)
	}
	return v, nil
}
