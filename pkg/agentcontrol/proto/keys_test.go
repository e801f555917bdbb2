package proto

import "testing"

func TestParseKeyCombo(t *testing.T) {
	tests := []struct {
		combo     string
		key       string
		modifiers int
	}{
		{"a", "a", 0},
		{"shift+a", "a", 1},
		{"control+a", "a", 2},
		{"alt+F4", "F4", 4},
		{"altgr+e", "e", 8},
		{"meta+l", "l", 16},
		{"shift+control+a", "a", 3},
		{"shift+control+alt+altgr+meta+x", "x", 31},
		{"F12", "F12", 0},
	}

	for _, tt := range tests {
		key, modifiers := ParseKeyCombo(tt.combo)
		if key != tt.key || modifiers != tt.modifiers {
			t.Errorf("ParseKeyCombo(%q) = (%q, %d), want (%q, %d)",
				tt.combo, key, modifiers, tt.key, tt.modifiers)
		}
	}
}

func TestParseKeyComboUnknownModifier(t *testing.T) {
	key, modifiers := ParseKeyCombo("hyper+shift+a")
	if key != "a" {
		t.Errorf("unexpected key: %q", key)
	}
	if modifiers != 1 {
		t.Errorf("unknown modifier should contribute 0, got bitmask %d", modifiers)
	}
}
