package chordspace

import "errors"

var (
	// ErrUnknownRelation is returned when a relation tag is not in the vocabulary.
	ErrUnknownRelation = errors.New("chordspace: unknown relation")

	// ErrVoiceCount is returned when a voice count has no sector geometry.
	ErrVoiceCount = errors.New("chordspace: voice count out of range")
)
