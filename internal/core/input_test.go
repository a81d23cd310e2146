package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if f.Any() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionLeft)
	f.Set(ActionUp) // duplicate keeps first position
	f.Click(3, 4)

	if !f.Has(ActionUp) || !f.Has(ActionLeft) || f.Has(ActionDown) {
		t.Error("Has() does not reflect the set actions")
	}
	order := f.Ordered()
	if len(order) != 2 || order[0] != ActionUp || order[1] != ActionLeft {
		t.Errorf("Ordered() = %v, expected [Up Left]", order)
	}
	if f.Pointer == nil || *f.Pointer != Pt(3, 4) {
		t.Errorf("Pointer = %v, expected (3, 4)", f.Pointer)
	}

	clone := f.Clone()
	f.Clear()
	if f.Any() || len(f.Ordered()) != 0 {
		t.Error("Clear() should reset actions, order and pointer")
	}
	if !clone.Has(ActionLeft) || clone.Pointer == nil {
		t.Error("Clone() should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" || Action(99).String() != "Unknown" {
		t.Error("unexpected Action.String() output")
	}
}
