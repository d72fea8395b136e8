package media

import "testing"

func TestParseBound(t *testing.T) {
	tests := []struct {
		input    string
		expected Bound
		wantErr  bool
	}{
		{"256x256", Bound{256, 256}, false},
		{"64x32", Bound{64, 32}, false},
		{"64", Bound{64, 64}, false},
		{"axb", Bound{}, true},
		{"0x10", Bound{}, true},
		{"10x0", Bound{}, true},
		{"", Bound{}, true},
		{"12x", Bound{}, true},
		{"-1x5", Bound{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bound, err := ParseBound(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if bound != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, bound)
			}
		})
	}
}

func TestBoundString(t *testing.T) {
	if s := (Bound{128, 64}).String(); s != "128x64" {
		t.Errorf("Expected '128x64', got '%s'", s)
	}
}

func TestBoundExceeds(t *testing.T) {
	bound := Bound{Width: 256, Height: 128}

	tests := []struct {
		name          string
		width, height int
		expected      bool
	}{
		{"inside", 100, 100, false},
		{"exactly at bound", 256, 128, false},
		{"wider", 300, 10, true},
		{"taller", 10, 200, true},
		{"both", 400, 400, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bound.Exceeds(tt.width, tt.height); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBoundFit(t *testing.T) {
	tests := []struct {
		name                  string
		bound                 Bound
		width, height         int
		expectedW, expectedH int
	}{
		{"landscape", Bound{256, 256}, 512, 256, 256, 128},
		{"portrait", Bound{256, 256}, 100, 400, 64, 256},
		{"square", Bound{128, 128}, 1024, 1024, 128, 128},
		{"wide bound", Bound{200, 100}, 400, 400, 100, 100},
		{"extreme ratio keeps a pixel", Bound{10, 10}, 10000, 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.bound.Fit(tt.width, tt.height)
			if w != tt.expectedW || h != tt.expectedH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedW, tt.expectedH, w, h)
			}
		})
	}
}
