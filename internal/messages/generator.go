// Package messages fills romantic proposal templates selected by tone and language.
package messages

import (
	"math/rand/v2"
	"strings"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
)

const (
	// YourNamePlaceholder is replaced with the creator's name.
	YourNamePlaceholder = "{yourName}"
	// PartnerNamePlaceholder is replaced with the partner's name.
	PartnerNamePlaceholder = "{partnerName}"
)

// RandomSource yields uniformly distributed values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultRandomSource returns a goroutine-safe source backed by math/rand/v2.
func DefaultRandomSource() RandomSource {
	return globalSource{}
}

// Request carries the personalization inputs.
type Request struct {
	YourName    string
	PartnerName string
	// RelationshipType is recorded with the proposal; template selection does not use it.
	RelationshipType catalog.RelationshipType
	Tone             catalog.Tone
	Language         catalog.Language
}

// Generator picks and fills templates from a fixed bank.
type Generator struct {
	random RandomSource
}

// NewGenerator constructs a generator. A nil source falls back to DefaultRandomSource.
func NewGenerator(random RandomSource) *Generator {
	if random == nil {
		random = DefaultRandomSource()
	}
	return &Generator{random: random}
}

// Generate returns one filled template for the request's tone and language.
// Names are substituted verbatim; the result is plain text, not markup.
func (g *Generator) Generate(request Request) string {
	pairs := templateBank[request.Tone]
	if len(pairs) == 0 {
		return ""
	}
	index := pickIndex(g.random.Float64(), len(pairs))
	return fill(pairs[index].render(request.Language), request.YourName, request.PartnerName)
}

// Candidates returns every message Generate can produce for the given inputs, in bank order.
func Candidates(tone catalog.Tone, language catalog.Language, yourName, partnerName string) []string {
	pairs := templateBank[tone]
	candidates := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		candidates = append(candidates, fill(pair.render(language), yourName, partnerName))
	}
	return candidates
}

func (p templatePair) render(language catalog.Language) string {
	switch language {
	case catalog.LanguageEnglish:
		return p.english
	case catalog.LanguageHinglish:
		return p.hinglish
	default:
		return ""
	}
}

func pickIndex(value float64, size int) int {
	index := int(value * float64(size))
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

func fill(template, yourName, partnerName string) string {
	replacer := strings.NewReplacer(YourNamePlaceholder, yourName, PartnerNamePlaceholder, partnerName)
	return replacer.Replace(template)
}
