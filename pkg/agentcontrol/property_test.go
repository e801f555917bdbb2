package agentcontrol

import "testing"

func TestPropertiesRegistration(t *testing.T) {
	tr := newFakeTransport()
	s := NewSession(tr)
	defer s.Close()

	want := []string{PropertyPower, PropertyProgram, PropertyKeyDown,
		PropertyLeftDown, PropertyRightDown}

	props := s.Properties()
	if len(props) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(props))
	}
	for i, name := range want {
		if props[i].Name != name {
			t.Errorf("property %d = %q, want %q", i, props[i].Name, name)
		}
		if !props[i].Options.Writable {
			t.Errorf("property %q should be writable", name)
		}
	}
}

func TestPropertySetThroughDescriptor(t *testing.T) {
	tr := newFakeTransport()
	s := NewSession(tr)
	defer s.Close()

	p, ok := s.PropertyByName(PropertyLeftDown)
	if !ok {
		t.Fatal("leftDown property not registered")
	}

	if err := p.Set("true"); err != nil {
		t.Fatal(err)
	}
	if got := p.Get(); got != true {
		t.Errorf("leftDown = %v after set", got)
	}

	if err := p.Set("not-a-bool"); err == nil {
		t.Error("invalid boolean value should be rejected")
	}
}

func TestPropertyByNameUnknown(t *testing.T) {
	tr := newFakeTransport()
	s := NewSession(tr)
	defer s.Close()

	if _, ok := s.PropertyByName("volume"); ok {
		t.Error("unknown property should not resolve")
	}
}
