// Package chime plays a short sound when a cook cycle ends on its own.
package chime

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// Audio format shared by the synthesizer and the player.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Tone synthesizes a sine at freqHz lasting d as 16-bit little-endian mono
// PCM. The amplitude fades out linearly so the end does not click.
func Tone(freqHz float64, d time.Duration) []byte {
	n := int(d.Seconds() * SampleRate)
	if n <= 0 || freqHz <= 0 {
		return nil
	}

	pcm := make([]byte, n*2)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		s := 0.4 * fade * math.Sin(2*math.Pi*freqHz*float64(i)/SampleRate)
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(s*math.MaxInt16)))
	}
	return pcm
}

// LoadWAV reads a WAV file and returns its PCM payload. The file must already
// be in the player's format.
func LoadWAV(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chime file: %w", err)
	}
	pcm, err := extractPCM(data)
	if err != nil {
		return nil, fmt.Errorf("chime file %s: %w", path, err)
	}
	return pcm, nil
}

// extractPCM strips the WAV/RIFF header and returns raw PCM data.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errors.New("wav data too short")
	}

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("not a valid WAV file")
	}

	// Walk chunks to find the "data" chunk.
	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}
