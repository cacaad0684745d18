// Package catalog defines the closed vocabularies shared by the generator, the proposal store and checkout:
// plans and their entitlements, relationship types, tones, languages and music options.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownPlan indicates a plan outside the supported tiers.
	ErrUnknownPlan = errors.New("catalog: unknown plan")
	// ErrUnknownTone indicates a tone outside the template bank.
	ErrUnknownTone = errors.New("catalog: unknown tone")
	// ErrUnknownLanguage indicates an unsupported message language.
	ErrUnknownLanguage = errors.New("catalog: unknown language")
	// ErrUnknownRelationship indicates an unsupported relationship type.
	ErrUnknownRelationship = errors.New("catalog: unknown relationship type")
)

// RelationshipType describes how the creator relates to their partner.
type RelationshipType string

const (
	RelationshipCrush        RelationshipType = "crush"
	RelationshipGirlfriend   RelationshipType = "girlfriend"
	RelationshipWife         RelationshipType = "wife"
	RelationshipLongDistance RelationshipType = "long-distance"
)

// RelationshipTypes lists every relationship type in display order.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{RelationshipCrush, RelationshipGirlfriend, RelationshipWife, RelationshipLongDistance}
}

// Label returns the human readable relationship name.
func (r RelationshipType) Label() string {
	switch r {
	case RelationshipCrush:
		return "Crush"
	case RelationshipGirlfriend:
		return "Girlfriend"
	case RelationshipWife:
		return "Wife"
	case RelationshipLongDistance:
		return "Long Distance Partner"
	default:
		return ""
	}
}

// Valid reports whether r is a known relationship type.
func (r RelationshipType) Valid() bool {
	return r.Label() != ""
}

// ParseRelationshipType validates raw input.
func ParseRelationshipType(raw string) (RelationshipType, error) {
	value := RelationshipType(normalize(raw))
	if !value.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRelationship, raw)
	}
	return value, nil
}

// Tone is the emotional register of a proposal message.
type Tone string

const (
	ToneCute         Tone = "cute"
	ToneEmotional    Tone = "emotional"
	ToneFilmy        Tone = "filmy"
	ToneFunny        Tone = "funny"
	ToneDeepRomantic Tone = "deep-romantic"
)

// Tones lists every tone in display order.
func Tones() []Tone {
	return []Tone{ToneCute, ToneEmotional, ToneFilmy, ToneFunny, ToneDeepRomantic}
}

// Label returns the human readable tone name.
func (t Tone) Label() string {
	switch t {
	case ToneCute:
		return "Cute & Sweet"
	case ToneEmotional:
		return "Emotional & Heartfelt"
	case ToneFilmy:
		return "Filmy & Dramatic"
	case ToneFunny:
		return "Funny & Playful"
	case ToneDeepRomantic:
		return "Deep Romantic"
	default:
		return ""
	}
}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	return t.Label() != ""
}

// ParseTone validates raw input.
func ParseTone(raw string) (Tone, error) {
	value := Tone(normalize(raw))
	if !value.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTone, raw)
	}
	return value, nil
}

// Language selects the rendering of a template pair.
type Language string

const (
	LanguageEnglish  Language = "english"
	LanguageHinglish Language = "hinglish"
)

// Languages lists every language in display order.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageHinglish}
}

// Label returns the human readable language name.
func (l Language) Label() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageHinglish:
		return "Hinglish"
	default:
		return ""
	}
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	return l.Label() != ""
}

// ParseLanguage validates raw input.
func ParseLanguage(raw string) (Language, error) {
	value := Language(normalize(raw))
	if !value.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, raw)
	}
	return value, nil
}

// MusicNone is the sentinel for a proposal without background music.
const MusicNone = "none"

// MusicOption is a selectable background track.
type MusicOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var musicOptions = []MusicOption{
	{Value: "romantic-piano", Label: "Romantic Piano"},
	{Value: "soft-guitar", Label: "Soft Guitar"},
	{Value: "love-ballad", Label: "Love Ballad"},
	{Value: "indian-romantic", Label: "Indian Romantic"},
	{Value: MusicNone, Label: "No Music"},
}

// MusicOptions returns a copy of the music option list.
func MusicOptions() []MusicOption {
	return append([]MusicOption(nil), musicOptions...)
}

// IsMusicOption reports whether value names a known track or the none sentinel.
func IsMusicOption(value string) bool {
	for _, option := range musicOptions {
		if option.Value == value {
			return true
		}
	}
	return false
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
