// ABOUTME: BPM bucket classification used when no genre template matches
// ABOUTME: Rounds half-up and splits tempos into drift, memphis and house

package prompt

import "math"

// BPM buckets used when no genre template matches.
const (
	BucketDrift   = "drift"
	BucketMemphis = "memphis"
	BucketHouse   = "house"
)

const (
	driftAbove   = 145
	memphisBelow = 115
)

// round rounds to the nearest integer with halves going up. NaN and Inf round to 0.
func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}

	// Keep -0 out of tags
	if r == 0 {
		return 0
	}

	return r
}

// BPMBucket classifies a tempo into a phonk sub-style after rounding to the nearest integer.
func BPMBucket(bpm float64) string {
	rounded := round(bpm)

	switch {
	case rounded > driftAbove:
		return BucketDrift
	case rounded < memphisBelow:
		return BucketMemphis
	default:
		return BucketHouse
	}
}
