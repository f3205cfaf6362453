package formats

import (
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
)

// Select picks the best selection from a probed catalogue. In video mode with
// a merge tool it prefers a split video-only/audio-only pair; otherwise it
// falls back to the best progressive stream. Returns a zero Selection when
// nothing qualifies; catalogue picking is skipped in audio mode, where the
// fixed best-audio selector serves instead.
func Select(catalogue []models.Format, c models.Constraints) models.Selection {
	if c.Mode != consts.ModeVideo || len(catalogue) == 0 {
		return models.Selection{}
	}

	if c.MergeCapable {
		if sel := pickSplitPair(catalogue, c.QualityCap); !sel.None() {
			return sel
		}
	}
	return pickProgressive(catalogue, c.QualityCap)
}

// pickSplitPair scores video-only candidates by (height, fps, bitrate) and
// audio-only candidates by (bitrate, sample rate). The height cap filters the
// video side; a capped-out or missing side means no pair.
func pickSplitPair(catalogue []models.Format, qualityCap int) models.Selection {
	var bestVideo, bestAudio *models.Format

	for i := range catalogue {
		f := &catalogue[i]
		switch {
		case f.HasVideo() && !f.HasAudio():
			if qualityCap > 0 && f.Height > qualityCap {
				continue
			}
			if bestVideo == nil || compareKeys(videoKeys(*f), videoKeys(*bestVideo)) > 0 {
				bestVideo = f
			}
		case f.HasAudio() && !f.HasVideo():
			if bestAudio == nil || compareKeys(audioKeys(*f), audioKeys(*bestAudio)) > 0 {
				bestAudio = f
			}
		}
	}

	if bestVideo == nil || bestAudio == nil {
		return models.Selection{}
	}
	return models.Selection{VideoID: bestVideo.ID, AudioID: bestAudio.ID}
}

// pickProgressive scores progressive candidates by the video key tuple. A cap
// that would empty a non-empty progressive set is ignored rather than
// returning nothing.
func pickProgressive(catalogue []models.Format, qualityCap int) models.Selection {
	progressive := make([]models.Format, 0, len(catalogue))
	for _, f := range catalogue {
		if f.Progressive() {
			progressive = append(progressive, f)
		}
	}
	if len(progressive) == 0 {
		return models.Selection{}
	}

	candidates := progressive
	if qualityCap > 0 {
		capped := make([]models.Format, 0, len(progressive))
		for _, f := range progressive {
			if f.Height <= qualityCap {
				capped = append(capped, f)
			}
		}
		if len(capped) > 0 {
			candidates = capped
		}
	}

	best := candidates[0]
	for _, f := range candidates[1:] {
		if compareKeys(videoKeys(f), videoKeys(best)) > 0 {
			best = f
		}
	}
	return models.Selection{VideoID: best.ID}
}

func videoKeys(f models.Format) []float64 {
	return []float64{float64(f.Height), f.FPS, f.Bitrate}
}

// audioKeys prefers the audio bitrate, falling back to the total bitrate for
// catalogues that only report tbr.
func audioKeys(f models.Format) []float64 {
	rate := f.AudioRate
	if rate == 0 {
		rate = f.Bitrate
	}
	return []float64{rate, float64(f.SampleRate)}
}

// compareKeys compares two key tuples lexicographically, returning a
// positive value when a ranks higher than b.
func compareKeys(a, b []float64) int {
	for i := range a {
		if i >= len(b) {
			return 1
		}
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}
