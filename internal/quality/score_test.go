package quality

import (
	"testing"

	"stacklens/internal/arch"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		in       Inputs
		expected float64
	}{
		{
			name:     "pristine service file",
			in:       Inputs{Loc: 80, Methods: 5, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 10.0,
		},
		{
			name:     "large file",
			in:       Inputs{Loc: 600, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 7.5,
		},
		{
			name:     "medium file",
			in:       Inputs{Loc: 350, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 8.5,
		},
		{
			name:     "slightly large file",
			in:       Inputs{Loc: 200, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 9.2,
		},
		{
			name:     "complex file",
			in:       Inputs{AvgComplexity: 16, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 7.0,
		},
		{
			name:     "god class",
			in:       Inputs{Methods: 35, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 7.5,
		},
		{
			name:     "unlayered file",
			in:       Inputs{Layer: arch.LayerOther, AntiPattern: "clean"},
			expected: 8.8,
		},
		{
			name:     "over annotated",
			in:       Inputs{Annotations: 30, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 9.0,
		},
		{
			name:     "anti pattern detected",
			in:       Inputs{Layer: arch.LayerService, AntiPattern: "broad_catch"},
			expected: 7.2,
		},
		{
			name: "everything wrong clamps at zero",
			in: Inputs{
				Loc:           1000,
				Methods:       40,
				Annotations:   30,
				AvgComplexity: 20,
				Layer:         arch.LayerOther,
				AntiPattern:   "god_controller",
			},
			expected: 0.0,
		},
		{
			name:     "no complexity estimate no penalty",
			in:       Inputs{AvgComplexity: 0, Layer: arch.LayerService, AntiPattern: "clean"},
			expected: 10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.in); got != tt.expected {
				t.Errorf("Score(%+v) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	in := Inputs{
		Loc: 10000, Methods: 100, Annotations: 100,
		AvgComplexity: 50, Layer: arch.LayerOther, AntiPattern: "x",
	}
	if got := Score(in); got < 0 {
		t.Errorf("Score() = %v, want >= 0", got)
	}
}
