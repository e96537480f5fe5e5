package facematch

import (
	"math"
	"testing"
)

func descriptorWithDistance(d float32) ([]float32, []float32) {
	a := make([]float32, DescriptorLength)
	b := make([]float32, DescriptorLength)
	// All the distance in one component keeps the expected value exact.
	b[0] = d
	return a, b
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical descriptors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 0,
		},
		{
			name: "unit distance",
			a:    []float32{0, 0},
			b:    []float32{1, 0},
			want: 1,
		},
		{
			name: "pythagorean",
			a:    []float32{0, 0},
			b:    []float32{3, 4},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceIncomparable(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
	}{
		{"mismatched lengths", []float32{1, 2}, []float32{1, 2, 3}},
		{"both empty", []float32{}, []float32{}},
		{"nil against values", nil, []float32{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); !math.IsInf(got, 1) {
				t.Errorf("Distance() = %v, want +Inf", got)
			}
		})
	}
}

func TestIsMatchStrictThreshold(t *testing.T) {
	tests := []struct {
		name      string
		distance  float32
		threshold float64
		want      bool
	}{
		{"well inside", 0.3, 0.5, true},
		{"exactly at threshold is not a match", 0.5, 0.5, false},
		{"outside", 0.7, 0.5, false},
		{"tighter threshold rejects", 0.3, 0.2, false},
		{"zero distance always matches", 0, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := descriptorWithDistance(tt.distance)
			if got := IsMatch(a, b, tt.threshold); got != tt.want {
				t.Errorf("IsMatch(distance=%v, threshold=%v) = %v, want %v", tt.distance, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestMatchesAny(t *testing.T) {
	probe := make([]float32, DescriptorLength)

	near := make([]float32, DescriptorLength)
	near[0] = 0.3

	far := make([]float32, DescriptorLength)
	far[0] = 2

	wrongLength := []float32{0.1, 0.2}

	tests := []struct {
		name       string
		candidates [][]float32
		want       bool
	}{
		{"no candidates", nil, false},
		{"single match", [][]float32{near}, true},
		{"match after misses", [][]float32{far, far, near}, true},
		{"all misses", [][]float32{far, far}, false},
		{"wrong-length candidates are skipped", [][]float32{wrongLength, near}, true},
		{"only wrong-length candidates", [][]float32{wrongLength, nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAny(probe, tt.candidates, DefaultThreshold); got != tt.want {
				t.Errorf("MatchesAny() = %v, want %v", got, tt.want)
			}
		})
	}
}
