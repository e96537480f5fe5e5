package facematch

import "math"

// DescriptorLength is the expected dimensionality of a face descriptor.
// The client-side recognition model emits 128-component embeddings.
const DescriptorLength = 128

// DefaultThreshold is the Euclidean distance below which two descriptors
// are considered the same person.
const DefaultThreshold = 0.5

// Distance returns the Euclidean distance between two descriptors.
// Descriptors of mismatched or zero length are never comparable and
// yield +Inf so they can never satisfy a threshold.
func Distance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// IsMatch reports whether probe and candidate are within threshold.
// The comparison is strict: a distance exactly equal to the threshold
// is not a match.
func IsMatch(probe, candidate []float32, threshold float64) bool {
	return Distance(probe, candidate) < threshold
}

// MatchesAny reports whether probe matches any of the candidate
// descriptors, scanning in the order supplied and stopping at the first
// match. Candidates with missing or wrong-length descriptors are
// skipped, not treated as errors.
func MatchesAny(probe []float32, candidates [][]float32, threshold float64) bool {
	for _, candidate := range candidates {
		if len(candidate) != DescriptorLength {
			continue
		}
		if IsMatch(probe, candidate, threshold) {
			return true
		}
	}
	return false
}
