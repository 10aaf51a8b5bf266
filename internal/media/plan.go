package media

import "math"

// Plan describes how a media item will be transcribed.
type Plan struct {
	// Split is false when the item is processed whole, as its own single
	// chunk, without invoking the segmenter.
	Split bool
	// NumChunks is the expected chunk count: ceil(duration / chunk length).
	NumChunks int
	// ChunkSeconds is the fixed chunk length used when Split is true.
	ChunkSeconds int
}

// PlanChunks decides whether a media item needs splitting. An unknown
// duration (durationSec <= 0) is treated as short: the item becomes a
// single chunk rather than failing.
func PlanChunks(durationSec float64, thresholdSec, chunkSec int) Plan {
	if durationSec <= 0 || durationSec <= float64(thresholdSec) {
		return Plan{Split: false, NumChunks: 1, ChunkSeconds: chunkSec}
	}

	n := int(math.Ceil(durationSec / float64(chunkSec)))
	if n < 1 {
		n = 1
	}

	return Plan{Split: true, NumChunks: n, ChunkSeconds: chunkSec}
}

// ChunkDuration returns the expected duration of chunk index within a plan,
// given the total source duration. The last chunk absorbs the remainder.
// Returns 0 (unknown) when the total duration is unknown.
func (p Plan) ChunkDuration(index int, totalSec float64) float64 {
	if !p.Split {
		return totalSec
	}
	if totalSec <= 0 {
		return 0
	}
	if index < p.NumChunks-1 {
		return float64(p.ChunkSeconds)
	}
	last := totalSec - float64(p.ChunkSeconds)*float64(p.NumChunks-1)
	if last <= 0 {
		return float64(p.ChunkSeconds)
	}
	return last
}
