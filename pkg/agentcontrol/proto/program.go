package proto

import "strings"

// ShutdownProgram is the well-known program string that shuts the peer down.
// A session whose program equals this string is considered powered off as
// soon as the transport drops.
const ShutdownProgram = `shutdown.exe|C:\Windows\System32|/s|/t|0`

// DefaultWorkingDir is used when the program string carries no working
// directory segment.
const DefaultWorkingDir = "/"

// ProgramSpec is the parsed form of a program property string.
type ProgramSpec struct {
	ExecutablePath string
	WorkingDir     string
	Arguments      []string
}

// ParseProgram parses a pipe-delimited program string `EXE|DIR|ARG1|ARG2|...`
// into a ProgramSpec. An empty string, or one with an empty executable path
// segment, means "no program" and yields nil. Malformed input is never an
// error, it degrades to nil.
func ParseProgram(s string) *ProgramSpec {
	if s == "" {
		return nil
	}

	segments := strings.Split(s, "|")
	if segments[0] == "" {
		return nil
	}

	spec := &ProgramSpec{
		ExecutablePath: segments[0],
		WorkingDir:     DefaultWorkingDir,
	}
	if len(segments) > 1 && segments[1] != "" {
		spec.WorkingDir = segments[1]
	}
	if len(segments) > 2 {
		spec.Arguments = segments[2:]
	}

	return spec
}

// ContainsUnsafeQuoting reports whether the quoted parts of the spec carry
// literal double quote characters. The agent's quoting rule has no escaping,
// so such input cannot round-trip; callers log a warning and send it as-is.
func (spec *ProgramSpec) ContainsUnsafeQuoting() bool {
	return strings.Contains(spec.ExecutablePath, `"`) ||
		strings.Contains(spec.WorkingDir, `"`)
}
