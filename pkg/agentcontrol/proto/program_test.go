package proto

import (
	"reflect"
	"testing"
)

func TestParseProgramFull(t *testing.T) {
	spec := ParseProgram(`player.exe|C:\Media|/loop|show.mp4`)
	if spec == nil {
		t.Fatal("expected a spec")
	}
	if spec.ExecutablePath != "player.exe" {
		t.Errorf("unexpected executable path: %q", spec.ExecutablePath)
	}
	if spec.WorkingDir != `C:\Media` {
		t.Errorf("unexpected working dir: %q", spec.WorkingDir)
	}
	if !reflect.DeepEqual(spec.Arguments, []string{"/loop", "show.mp4"}) {
		t.Errorf("unexpected arguments: %v", spec.Arguments)
	}
}

func TestParseProgramExecutableOnly(t *testing.T) {
	spec := ParseProgram("player.exe")
	if spec == nil {
		t.Fatal("expected a spec")
	}
	if spec.WorkingDir != DefaultWorkingDir {
		t.Errorf("unexpected working dir: %q", spec.WorkingDir)
	}
	if len(spec.Arguments) != 0 {
		t.Errorf("unexpected arguments: %v", spec.Arguments)
	}
}

func TestParseProgramEmptyWorkingDirSegment(t *testing.T) {
	spec := ParseProgram("player.exe||/loop")
	if spec == nil {
		t.Fatal("expected a spec")
	}
	if spec.WorkingDir != DefaultWorkingDir {
		t.Errorf("unexpected working dir: %q", spec.WorkingDir)
	}
	if !reflect.DeepEqual(spec.Arguments, []string{"/loop"}) {
		t.Errorf("unexpected arguments: %v", spec.Arguments)
	}
}

func TestParseProgramNoProgram(t *testing.T) {
	if spec := ParseProgram(""); spec != nil {
		t.Errorf("empty string should yield nil, got %+v", spec)
	}
	if spec := ParseProgram(`|C:\Media|arg`); spec != nil {
		t.Errorf("empty executable segment should yield nil, got %+v", spec)
	}
}

func TestParseShutdownProgram(t *testing.T) {
	spec := ParseProgram(ShutdownProgram)
	if spec == nil {
		t.Fatal("expected a spec")
	}
	if spec.ExecutablePath != "shutdown.exe" {
		t.Errorf("unexpected executable path: %q", spec.ExecutablePath)
	}
	if spec.WorkingDir != `C:\Windows\System32` {
		t.Errorf("unexpected working dir: %q", spec.WorkingDir)
	}
	if !reflect.DeepEqual(spec.Arguments, []string{"/s", "/t", "0"}) {
		t.Errorf("unexpected arguments: %v", spec.Arguments)
	}
}

func TestContainsUnsafeQuoting(t *testing.T) {
	if ParseProgram(`player.exe|C:\Media`).ContainsUnsafeQuoting() {
		t.Error("plain paths should be safe")
	}
	if !ParseProgram(`pla"yer.exe|C:\Media`).ContainsUnsafeQuoting() {
		t.Error("quote in executable path should be flagged")
	}
	if !ParseProgram(`player.exe|C:\Me"dia`).ContainsUnsafeQuoting() {
		t.Error("quote in working dir should be flagged")
	}
	// Positional arguments are sent unquoted, embedded quotes are fine there.
	if ParseProgram(`player.exe|C:\Media|a"b`).ContainsUnsafeQuoting() {
		t.Error("quote in arguments should not be flagged")
	}
}
