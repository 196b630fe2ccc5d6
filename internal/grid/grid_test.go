package grid

import "testing"

func TestDefaults(t *testing.T) {
	s := Defaults()
	if size, on := s.PositionGrid(); !on || size != 0.5 {
		t.Errorf("PositionGrid() = %v, %v, want 0.5, true", size, on)
	}
	if deg, on := s.RotationGrid(); !on || deg != 15 {
		t.Errorf("RotationGrid() = %v, %v, want 15, true", deg, on)
	}
	if size, on := s.ScaleGrid(); !on || size != 0.25 {
		t.Errorf("ScaleGrid() = %v, %v, want 0.25, true", size, on)
	}
}

func TestTogglePositionGrid(t *testing.T) {
	s := Defaults()
	s.TogglePositionGrid()
	if _, on := s.PositionGrid(); on {
		t.Error("grid still enabled after toggle")
	}
	// Disabled keeps the size so re-enabling restores it.
	s.TogglePositionGrid()
	if size, on := s.PositionGrid(); !on || size != 0.5 {
		t.Errorf("PositionGrid() after double toggle = %v, %v", size, on)
	}
}

func TestStepPositionGridClampsAtEnds(t *testing.T) {
	s := Defaults()
	for i := 0; i < 20; i++ {
		s.StepPositionGrid(true)
	}
	if size, _ := s.PositionGrid(); size != 10 {
		t.Errorf("stepped past top of list: size %v", size)
	}
	for i := 0; i < 20; i++ {
		s.StepPositionGrid(false)
	}
	if size, _ := s.PositionGrid(); size != 0.05 {
		t.Errorf("stepped past bottom of list: size %v", size)
	}
}

func TestRotationModes(t *testing.T) {
	s := Defaults()
	s.SetRotationMode(RotationDivisionsOf360)
	if deg, _ := s.RotationGrid(); deg != 11.25 {
		t.Errorf("divisions-of-360 increment = %v, want 11.25", deg)
	}
	s.SetRotationMode(RotationFixedList)
	if deg, _ := s.RotationGrid(); deg != 15 {
		t.Errorf("fixed-list increment = %v, want 15", deg)
	}
}

func TestPow2Sizes(t *testing.T) {
	s := Defaults()
	s.SetUsePow2(true)
	if size, _ := s.PositionGrid(); size != 0.5 {
		t.Errorf("pow2 size at same index = %v, want 0.5", size)
	}
	s.StepPositionGrid(true)
	if size, _ := s.PositionGrid(); size != 1 {
		t.Errorf("pow2 size after step = %v, want 1", size)
	}
}

func TestSetRotationGridEnabled(t *testing.T) {
	s := Defaults()
	s.SetRotationGridEnabled(false)
	if _, on := s.RotationGrid(); on {
		t.Error("rotation grid still enabled")
	}
	s.SetRotationGridEnabled(true)
	if _, on := s.RotationGrid(); !on {
		t.Error("rotation grid not re-enabled")
	}
}
