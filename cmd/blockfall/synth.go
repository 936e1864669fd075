package main

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/plus3/blockfall/session"
)

const sampleRate = 44100

// tone is one step of a sound effect.
type tone struct {
	freq float64
	dur  time.Duration
}

// effects describes the sound of every session signal.
var effects = map[session.Signal][]tone{
	session.SignalMove:     {{freq: 880, dur: 25 * time.Millisecond}},
	session.SignalRotate:   {{freq: 660, dur: 35 * time.Millisecond}},
	session.SignalDrop:     {{freq: 180, dur: 60 * time.Millisecond}},
	session.SignalClear:    {{523, 60 * time.Millisecond}, {659, 60 * time.Millisecond}, {784, 90 * time.Millisecond}},
	session.SignalLevelUp:  {{392, 70 * time.Millisecond}, {523, 70 * time.Millisecond}, {659, 70 * time.Millisecond}, {1046, 140 * time.Millisecond}},
	session.SignalGameOver: {{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
}

// synthesize renders tones as 16-bit little-endian stereo PCM. Each tone is a
// square wave with a short linear fade so steps do not click.
func synthesize(tones []tone) []byte {
	var total int
	for _, t := range tones {
		total += samples(t.dur)
	}
	buf := make([]byte, 0, total*4)

	const amplitude = 0.25 * math.MaxInt16
	for _, t := range tones {
		n := samples(t.dur)
		fade := max(n/10, 1)
		period := float64(sampleRate) / t.freq
		for i := 0; i < n; i++ {
			v := amplitude
			if math.Mod(float64(i), period) >= period/2 {
				v = -v
			}
			if i < fade {
				v *= float64(i) / float64(fade)
			} else if n-i < fade {
				v *= float64(n-i) / float64(fade)
			}
			s := uint16(int16(v))
			buf = binary.LittleEndian.AppendUint16(buf, s)
			buf = binary.LittleEndian.AppendUint16(buf, s)
		}
	}
	return buf
}

func samples(d time.Duration) int {
	return int(d * sampleRate / time.Second)
}
