package pitv

import "errors"

var (
	// ErrVoiceCount is returned for voice counts the index cannot enumerate.
	ErrVoiceCount = errors.New("pitv: voice count out of range")

	// ErrGenerator is returned when the generator does not divide the octave.
	ErrGenerator = errors.New("pitv: invalid generator")

	// ErrRange is returned when the voicing range is not a whole number of
	// octaves.
	ErrRange = errors.New("pitv: invalid range")
)
