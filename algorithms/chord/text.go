package chord

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String formats the pitches as space-separated decimals. The text is exact
// (it parses back to the same float64 values) and negative zero prints as 0,
// so it doubles as a map key.
func (c Chord) String() string {
	var b strings.Builder
	for i, v := range c.voices {
		if i > 0 {
			b.WriteByte(' ')
		}
		pitch := v.Pitch
		if pitch == 0 {
			pitch = 0
		}
		b.WriteString(strconv.FormatFloat(pitch, 'g', -1, 64))
	}
	return b.String()
}

// Key is the exact textual form used by caches.
func (c Chord) Key() string {
	return c.String()
}

// Parse reads whitespace-separated pitches. Tokens that are not numbers are
// skipped, so malformed text yields a chord with fewer (possibly zero)
// voices.
func Parse(text string) Chord {
	fields := strings.Fields(text)
	pitches := make([]float64, 0, len(fields))
	for _, field := range fields {
		pitch, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		pitches = append(pitches, pitch)
	}
	return FromPitches(pitches...)
}

// ReadChords parses one chord per non-blank line.
func ReadChords(r io.Reader) ([]Chord, error) {
	var chords []Chord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		chords = append(chords, Parse(line))
	}
	if err := scanner.Err(); err != nil {
		return chords, fmt.Errorf("failed to read chords: %w", err)
	}
	return chords, nil
}

// WriteChords writes one chord per line.
func WriteChords(w io.Writer, chords ...Chord) error {
	bw := bufio.NewWriter(w)
	for _, c := range chords {
		if _, err := bw.WriteString(c.String()); err != nil {
			return fmt.Errorf("failed to write chord: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write chord: %w", err)
		}
	}
	return bw.Flush()
}
