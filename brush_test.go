package retouch

import "testing"

func TestBrushClamped(t *testing.T) {
	tests := []struct {
		name   string
		in     Brush
		expect Brush
	}{
		{"in range", Brush{Size: 60, Strength: 0.5, Hardness: 0.5}, Brush{Size: 60, Strength: 0.5, Hardness: 0.5}},
		{"size too small", Brush{Size: 2, Strength: 0.5}, Brush{Size: MinBrushSize, Strength: 0.5}},
		{"size too large", Brush{Size: 500, Strength: 0.5}, Brush{Size: MaxBrushSize, Strength: 0.5}},
		{"strength too low", Brush{Size: 60, Strength: 0}, Brush{Size: 60, Strength: MinBrushStrength}},
		{"strength too high", Brush{Size: 60, Strength: 2}, Brush{Size: 60, Strength: MaxBrushStrength}},
		{"hardness negative", Brush{Size: 60, Strength: 0.5, Hardness: -1}, Brush{Size: 60, Strength: 0.5, Hardness: 0}},
		{"hardness too high", Brush{Size: 60, Strength: 0.5, Hardness: 3}, Brush{Size: 60, Strength: 0.5, Hardness: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.expect {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.expect)
			}
		})
	}
}

func TestDefaultBrush(t *testing.T) {
	b := DefaultBrush()
	if b != b.Clamped() {
		t.Errorf("DefaultBrush() = %+v is outside the valid ranges", b)
	}
	if b.HardEdged() {
		t.Error("default brush should be feathered")
	}
}

func TestBrushRadius(t *testing.T) {
	b := Brush{Size: 60}
	if got := b.Radius(); got != 30 {
		t.Errorf("Radius() = %v, want 30", got)
	}
}

func TestBrushHardEdged(t *testing.T) {
	tests := []struct {
		hardness float64
		expect   bool
	}{
		{0, false},
		{0.89, false},
		{0.9, true},
		{1, true},
	}
	for _, tt := range tests {
		b := Brush{Hardness: tt.hardness}
		if got := b.HardEdged(); got != tt.expect {
			t.Errorf("Brush{Hardness: %v}.HardEdged() = %v, want %v", tt.hardness, got, tt.expect)
		}
	}
}
