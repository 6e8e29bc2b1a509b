// Package sound synthesises the short tone cues played on phase changes.
package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// Output format shared by every cue.
const (
	SampleRate   = 44100
	ChannelCount = 2
	bytesPerPCM  = 2
)

// Cue identifies a tone sequence.
type Cue string

const (
	CueStart  Cue = "start"
	CueFinish Cue = "finish"
)

// Tone is one segment of a cue. A zero Frequency is silence.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Amplitude float64
}

// Sequence returns the tone segments for a cue.
func Sequence(cue Cue) []Tone {
	switch cue {
	case CueStart:
		return []Tone{{Frequency: 1000, Duration: 500 * time.Millisecond, Amplitude: 0.20}}
	case CueFinish:
		beep := Tone{Frequency: 440, Duration: 250 * time.Millisecond, Amplitude: 0.20}
		pause := Tone{Duration: 250 * time.Millisecond}
		return []Tone{beep, pause, beep, pause, beep, pause}
	default:
		return nil
	}
}

// Render synthesises tones as interleaved signed 16-bit little endian PCM.
func Render(tones []Tone) []byte {
	var total int
	for _, tone := range tones {
		total += frameCount(tone.Duration)
	}

	pcm := make([]byte, 0, total*ChannelCount*bytesPerPCM)
	frame := make([]byte, bytesPerPCM)
	for _, tone := range tones {
		frames := frameCount(tone.Duration)
		for index := 0; index < frames; index++ {
			var value float64
			if tone.Frequency > 0 {
				t := float64(index) / SampleRate
				value = math.Sin(2*math.Pi*tone.Frequency*t) * clampAmplitude(tone.Amplitude)
			}
			binary.LittleEndian.PutUint16(frame, uint16(int16(value*math.MaxInt16)))
			for channel := 0; channel < ChannelCount; channel++ {
				pcm = append(pcm, frame...)
			}
		}
	}
	return pcm
}

// Duration returns the playing time of a rendered cue.
func Duration(cue Cue) time.Duration {
	var total time.Duration
	for _, tone := range Sequence(cue) {
		total += tone.Duration
	}
	return total
}

func frameCount(duration time.Duration) int {
	if duration <= 0 {
		return 0
	}
	return int(duration * SampleRate / time.Second)
}

func clampAmplitude(amplitude float64) float64 {
	if amplitude < 0 {
		return 0
	}
	if amplitude > 1 {
		return 1
	}
	return amplitude
}
