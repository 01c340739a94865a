package scale

// pitchClassName pairs a note name with its pitch class (0=C, 1=C#, ..., 11=B).
// Sharps precede their enharmonic flats so that sharp names display first.
type pitchClassName struct {
	name  string
	class float64
}

var pitchClassNames = []pitchClassName{
	{"C", 0},
	{"C#", 1},
	{"Db", 1},
	{"D", 2},
	{"D#", 3},
	{"Eb", 3},
	{"E", 4},
	{"F", 5},
	{"F#", 6},
	{"Gb", 6},
	{"G", 7},
	{"G#", 8},
	{"Ab", 8},
	{"A", 9},
	{"A#", 10},
	{"Bb", 10},
	{"B", 11},
}

// nameForPitchClass returns the first note name of a pitch class.
func nameForPitchClass(class float64) string {
	for _, pc := range pitchClassNames {
		if pc.class == class {
			return pc.name
		}
	}
	return ""
}

// template is a named interval pattern above a root or tonic.
type template struct {
	name      string
	intervals []float64
}

// Chord types are suffixed to the root name ("CM7", "F#m").
var chordTypes = []template{
	{"M", []float64{0, 4, 7}},
	{"m", []float64{0, 3, 7}},
	{"o", []float64{0, 3, 6}},
	{"+", []float64{0, 4, 8}},
	{"sus2", []float64{0, 2, 7}},
	{"sus4", []float64{0, 5, 7}},
	{"M6", []float64{0, 4, 7, 9}},
	{"m6", []float64{0, 3, 7, 9}},
	{"M7", []float64{0, 4, 7, 11}},
	{"7", []float64{0, 4, 7, 10}},
	{"m7", []float64{0, 3, 7, 10}},
	{"mM7", []float64{0, 3, 7, 11}},
	{"ø7", []float64{0, 3, 6, 10}},
	{"o7", []float64{0, 3, 6, 9}},
	{"+7", []float64{0, 4, 8, 10}},
	{"+M7", []float64{0, 4, 8, 11}},
	{"7sus4", []float64{0, 5, 7, 10}},
	{"add9", []float64{0, 4, 7, 14}},
	{"madd9", []float64{0, 3, 7, 14}},
	{"M9", []float64{0, 4, 7, 11, 14}},
	{"9", []float64{0, 4, 7, 10, 14}},
	{"m9", []float64{0, 3, 7, 10, 14}},
	{"7b9", []float64{0, 4, 7, 10, 13}},
	{"7#9", []float64{0, 4, 7, 10, 15}},
	{"69", []float64{0, 4, 7, 9, 14}},
	{"M11", []float64{0, 4, 7, 11, 14, 17}},
	{"11", []float64{0, 4, 7, 10, 14, 17}},
	{"m11", []float64{0, 3, 7, 10, 14, 17}},
	{"M13", []float64{0, 4, 7, 11, 14, 17, 21}},
	{"13", []float64{0, 4, 7, 10, 14, 17, 21}},
	{"m13", []float64{0, 3, 7, 10, 14, 17, 21}},
}

// Scale types carry a leading space ("C major", "Bb Dorian"). Where two
// types share intervals the earlier one is the display name.
var scaleTypes = []template{
	{" major", []float64{0, 2, 4, 5, 7, 9, 11}},
	{" natural minor", []float64{0, 2, 3, 5, 7, 8, 10}},
	{" harmonic minor", []float64{0, 2, 3, 5, 7, 8, 11}},
	{" melodic minor", []float64{0, 2, 3, 5, 7, 9, 11}},
	{" Ionian", []float64{0, 2, 4, 5, 7, 9, 11}},
	{" Dorian", []float64{0, 2, 3, 5, 7, 9, 10}},
	{" Phrygian", []float64{0, 1, 3, 5, 7, 8, 10}},
	{" Lydian", []float64{0, 2, 4, 6, 7, 9, 11}},
	{" Mixolydian", []float64{0, 2, 4, 5, 7, 9, 10}},
	{" Aeolian", []float64{0, 2, 3, 5, 7, 8, 10}},
	{" Locrian", []float64{0, 1, 3, 5, 6, 8, 10}},
	{" whole tone", []float64{0, 2, 4, 6, 8, 10}},
	{" major pentatonic", []float64{0, 2, 4, 7, 9}},
	{" minor pentatonic", []float64{0, 3, 5, 7, 10}},
	{" blues", []float64{0, 3, 5, 6, 7, 10}},
	{" octatonic", []float64{0, 2, 3, 5, 6, 8, 9, 11}},
}

// transpose returns the intervals raised to start at root.
func transpose(root float64, intervals []float64) []float64 {
	pitches := make([]float64, len(intervals))
	for i, interval := range intervals {
		pitches[i] = root + interval
	}
	return pitches
}
