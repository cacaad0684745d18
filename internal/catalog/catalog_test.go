package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLimitsTable(t *testing.T) {
	testCases := []struct {
		plan Plan
		want Limits
	}{
		{plan: PlanBasic, want: Limits{MaxPhotos: 3}},
		{plan: PlanRomantic, want: Limits{MaxPhotos: 5, HasMusic: true, HasAnimatedButtons: true, HasConfetti: true}},
		{plan: PlanPremium, want: Limits{MaxPhotos: 10, HasMusic: true, HasAnimatedButtons: true, HasConfetti: true, HasSlideshow: true, HasCustomSlug: true}},
	}
	for _, testCase := range testCases {
		t.Run(string(testCase.plan), func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.plan.Limits())
		})
	}
	assert.Equal(t, Limits{}, Plan("gold").Limits())
}

func TestEveryPlanHasPresentation(t *testing.T) {
	for _, plan := range Plans() {
		assert.True(t, plan.Valid())
		assert.NotEmpty(t, plan.Name(), plan)
		assert.Positive(t, plan.Price(), plan)
		assert.NotEmpty(t, plan.Features(), plan)
	}
	assert.Equal(t, int64(39), PlanBasic.Price())
	assert.Equal(t, int64(69), PlanRomantic.Price())
	assert.Equal(t, int64(169), PlanPremium.Price())
	assert.True(t, PlanRomantic.Popular())
}

func TestEnumerationsHaveLabels(t *testing.T) {
	for _, tone := range Tones() {
		assert.True(t, tone.Valid(), tone)
	}
	for _, language := range Languages() {
		assert.True(t, language.Valid(), language)
	}
	for _, relationship := range RelationshipTypes() {
		assert.True(t, relationship.Valid(), relationship)
	}
	assert.Equal(t, "Long Distance Partner", RelationshipLongDistance.Label())
	assert.Equal(t, "Deep Romantic", ToneDeepRomantic.Label())
}

func TestParseFunctionsNormalizeInput(t *testing.T) {
	plan, err := ParsePlan(" Premium ")
	require.NoError(t, err)
	assert.Equal(t, PlanPremium, plan)

	tone, err := ParseTone("DEEP-ROMANTIC")
	require.NoError(t, err)
	assert.Equal(t, ToneDeepRomantic, tone)

	language, err := ParseLanguage("Hinglish")
	require.NoError(t, err)
	assert.Equal(t, LanguageHinglish, language)

	relationship, err := ParseRelationshipType("long-distance")
	require.NoError(t, err)
	assert.Equal(t, RelationshipLongDistance, relationship)

	_, err = ParsePlan("platinum")
	assert.ErrorIs(t, err, ErrUnknownPlan)
	_, err = ParseTone("sarcastic")
	assert.ErrorIs(t, err, ErrUnknownTone)
	_, err = ParseLanguage("french")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	_, err = ParseRelationshipType("ex")
	assert.ErrorIs(t, err, ErrUnknownRelationship)
}

func TestMusicOptions(t *testing.T) {
	options := MusicOptions()
	require.Len(t, options, 5)
	assert.True(t, IsMusicOption("soft-guitar"))
	assert.True(t, IsMusicOption(MusicNone))
	assert.False(t, IsMusicOption("heavy-metal"))

	options[0].Value = "mutated"
	assert.Equal(t, "romantic-piano", MusicOptions()[0].Value)
}
