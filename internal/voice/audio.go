// Package voice captures dictated notes and turns them into text.
//
// Audio is always 16 kHz mono signed 16-bit little-endian PCM.
package voice

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	SampleRate = 16000
	Channels   = 1
	// ChunkFrames is how many frames the recorder reads per meter update.
	ChunkFrames = 1024

	MinGain     = 1
	MaxGain     = 10
	DefaultGain = 5
)

// ClampGain keeps gain within MinGain..MaxGain.
func ClampGain(gain int) int {
	if gain < MinGain {
		return MinGain
	}
	if gain > MaxGain {
		return MaxGain
	}
	return gain
}

// ApplyGain multiplies every sample by gain and clips the result to the
// int16 range. samples is not modified.
func ApplyGain(samples []int16, gain int) []int16 {
	g := int32(ClampGain(gain))
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := int32(s) * g
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		out[i] = int16(v)
	}
	return out
}

// Level returns the peak amplitude of samples scaled to 0..1.
func Level(samples []int16) float64 {
	var peak int32
	for _, s := range samples {
		v := int32(s)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	l := float64(peak) / math.MaxInt16
	if l > 1 {
		l = 1
	}
	return l
}

// DecodePCM converts little-endian bytes to samples. A trailing odd byte is
// ignored.
func DecodePCM(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}

// wavPCM is the WAVE_FORMAT_PCM format tag.
const wavPCM = 1

// WriteWAV encodes samples as a 16-bit PCM WAVE file.
func WriteWAV(w io.WriteSeeker, samples []int16) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(w, SampleRate, 16, Channels, wavPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: Channels, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return enc.Close()
}

// EncodeWAV returns samples as WAVE bytes. The encoder patches its header
// after the data, so the file is staged on disk.
func EncodeWAV(samples []int16) ([]byte, error) {
	f, err := os.CreateTemp("", "shiftjournal-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := WriteWAV(f, samples); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Name())
}
