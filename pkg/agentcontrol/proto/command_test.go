package proto

import "testing"

func TestMarshalMouseMove(t *testing.T) {
	cmd := NewMouseMoveCommand(100, 200)
	if got := cmd.Marshal(); got != "MouseMove 100 200" {
		t.Errorf("unexpected line: %q", got)
	}
}

func TestMarshalMousePress(t *testing.T) {
	cmd := NewMousePressCommand(ButtonMaskLeft, PressActionDown)
	if got := cmd.Marshal(); got != "MousePress 1 1" {
		t.Errorf("unexpected line: %q", got)
	}

	cmd = NewMousePressCommand(ButtonMaskRight, PressActionUp)
	if got := cmd.Marshal(); got != "MousePress 2 2" {
		t.Errorf("unexpected line: %q", got)
	}
}

func TestMarshalKeyPress(t *testing.T) {
	key, modifiers := ParseKeyCombo("shift+control+a")
	cmd := NewKeyPressCommand(key, modifiers)
	if got := cmd.Marshal(); got != "KeyPress a 3" {
		t.Errorf("unexpected line: %q", got)
	}
}

func TestMarshalTerminate(t *testing.T) {
	spec := ParseProgram(`notepad.exe|C:\Windows`)
	cmd := NewTerminateCommand(spec)
	if got := cmd.Marshal(); got != `Terminate "notepad.exe"` {
		t.Errorf("unexpected line: %q", got)
	}
}

func TestMarshalLaunch(t *testing.T) {
	spec := ParseProgram(`player.exe|C:\Media|/loop|show.mp4`)
	cmd := NewLaunchCommand(spec)
	want := `Launch "C:\Media" "player.exe" /loop show.mp4`
	if got := cmd.Marshal(); got != want {
		t.Errorf("unexpected line: %q, want %q", got, want)
	}
}

func TestMarshalLaunchDefaultsWorkingDir(t *testing.T) {
	spec := ParseProgram("player.exe")
	cmd := NewLaunchCommand(spec)
	if got := cmd.Marshal(); got != `Launch "/" "player.exe"` {
		t.Errorf("unexpected line: %q", got)
	}
}

func TestMarshalCommandWithoutArgs(t *testing.T) {
	cmd := Command{Name: "Noop"}
	if got := cmd.Marshal(); got != "Noop" {
		t.Errorf("unexpected line: %q", got)
	}
}
