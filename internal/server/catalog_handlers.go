package server

import (
	"net/http"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/checkout"
	"github.com/gin-gonic/gin"
)

type planPayload struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Price    int64          `json:"price"`
	Currency string         `json:"currency"`
	Popular  bool           `json:"popular"`
	Features []string       `json:"features"`
	Limits   catalog.Limits `json:"limits"`
}

type optionPayload struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionsResponsePayload struct {
	RelationshipTypes []optionPayload `json:"relationship_types"`
	Tones             []optionPayload `json:"tones"`
	Languages         []optionPayload `json:"languages"`
	Music             []optionPayload `json:"music"`
	PaymentMethods    []string        `json:"payment_methods"`
}

func (h *httpHandler) handlePlans(c *gin.Context) {
	plans := catalog.Plans()
	response := make([]planPayload, 0, len(plans))
	for _, plan := range plans {
		response = append(response, newPlanPayload(plan))
	}
	c.JSON(http.StatusOK, gin.H{"plans": response})
}

func newPlanPayload(plan catalog.Plan) planPayload {
	return planPayload{
		ID:       string(plan),
		Name:     plan.Name(),
		Price:    plan.Price(),
		Currency: catalog.CurrencyINR,
		Popular:  plan.Popular(),
		Features: plan.Features(),
		Limits:   plan.Limits(),
	}
}

func (h *httpHandler) handleOptions(c *gin.Context) {
	response := optionsResponsePayload{}
	for _, relationship := range catalog.RelationshipTypes() {
		response.RelationshipTypes = append(response.RelationshipTypes, optionPayload{Value: string(relationship), Label: relationship.Label()})
	}
	for _, tone := range catalog.Tones() {
		response.Tones = append(response.Tones, optionPayload{Value: string(tone), Label: tone.Label()})
	}
	for _, language := range catalog.Languages() {
		response.Languages = append(response.Languages, optionPayload{Value: string(language), Label: language.Label()})
	}
	for _, music := range catalog.MusicOptions() {
		response.Music = append(response.Music, optionPayload{Value: music.Value, Label: music.Label})
	}
	for _, method := range checkout.Methods() {
		response.PaymentMethods = append(response.PaymentMethods, string(method))
	}
	c.JSON(http.StatusOK, response)
}
