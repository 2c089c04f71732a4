package ui

import "testing"

func TestOverlayToggleExclusive(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.Toggle(OverlayVisibility) {
		t.Fatal("Toggle(visibility) = false, want true")
	}
	reg.Toggle(OverlayRays)
	if reg.IsEnabled(OverlayVisibility) {
		t.Error("enabling rays should disable the visibility polygon")
	}
	if !reg.IsEnabled(OverlayRays) {
		t.Error("rays not enabled")
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()

	want := []string{"maze", "perception", "debug"}
	got := reg.Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOverlayKeysUnique(t *testing.T) {
	reg := NewOverlayRegistry()
	seen := make(map[int32]OverlayID)
	for _, d := range reg.All() {
		if prev, ok := seen[d.Key]; ok {
			t.Errorf("key %s shared by %s and %s", d.KeyLabel, prev, d.ID)
		}
		seen[d.Key] = d.ID
	}
}

func TestHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()
	desc, _ := reg.Get(OverlayColliders)

	id, on, ok := reg.HandleKeyPress(desc.Key)
	if !ok || id != OverlayColliders || !on {
		t.Errorf("HandleKeyPress = (%s, %v, %v), want (%s, true, true)", id, on, ok, OverlayColliders)
	}
	if got := reg.EnabledOverlays(); len(got) != 1 || got[0] != OverlayColliders {
		t.Errorf("EnabledOverlays = %v", got)
	}
}
