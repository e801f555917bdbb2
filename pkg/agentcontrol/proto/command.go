package proto

import (
	"strconv"
	"strings"
)

// Command names understood by the remote control agent. The agent speaks a
// plain ASCII line protocol: one command per line, arguments separated by
// single spaces.
const (
	CmdMouseMove  = "MouseMove"
	CmdMousePress = "MousePress"
	CmdKeyPress   = "KeyPress"
	CmdTerminate  = "Terminate"
	CmdLaunch     = "Launch"
)

// Mouse button masks and press actions. These values are a fixed contract of
// the agent, not something we choose.
const (
	ButtonMaskLeft  = 1
	ButtonMaskRight = 2

	PressActionDown = 1
	PressActionUp   = 2
)

// Command is one outbound line to the agent.
type Command struct {
	Name string
	Args []string
}

// Marshal renders the command as its wire line, without line terminator. The
// transport owns the framing.
func (c Command) Marshal() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

func NewMouseMoveCommand(x, y int) Command {
	return Command{
		Name: CmdMouseMove,
		Args: []string{strconv.Itoa(x), strconv.Itoa(y)},
	}
}

func NewMousePressCommand(buttonMask, action int) Command {
	return Command{
		Name: CmdMousePress,
		Args: []string{strconv.Itoa(buttonMask), strconv.Itoa(action)},
	}
}

func NewKeyPressCommand(key string, modifiers int) Command {
	return Command{
		Name: CmdKeyPress,
		Args: []string{key, strconv.Itoa(modifiers)},
	}
}

// NewTerminateCommand asks the agent to kill the process launched from the
// given executable path. The path is sent wrapped in literal double quotes.
func NewTerminateCommand(spec *ProgramSpec) Command {
	return Command{
		Name: CmdTerminate,
		Args: []string{quote(spec.ExecutablePath)},
	}
}

// NewLaunchCommand asks the agent to start a program. Working directory and
// executable path are sent wrapped in literal double quotes, positional
// arguments verbatim and unquoted.
func NewLaunchCommand(spec *ProgramSpec) Command {
	args := make([]string, 0, 2+len(spec.Arguments))
	args = append(args, quote(spec.WorkingDir), quote(spec.ExecutablePath))
	args = append(args, spec.Arguments...)
	return Command{
		Name: CmdLaunch,
		Args: args,
	}
}

// quote wraps v in literal double quotes. This is a wire-format requirement
// of the agent, not shell escaping. Embedded quote characters are passed
// through unchanged; callers flag them (see Session).
func quote(v string) string {
	return `"` + v + `"`
}
