package pipeline

import (
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Duration decodes an mp3 stream and returns its playable length in
// seconds. The decoder emits 16-bit stereo PCM, so four bytes per sample.
func mp3Duration(r io.Reader) (float64, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return 0, err
	}
	// Length is -1 when the source cannot seek.
	samples := decoder.Length() / 4
	if samples < 0 || decoder.SampleRate() == 0 {
		return 0, nil
	}
	return float64(samples) / float64(decoder.SampleRate()), nil
}
