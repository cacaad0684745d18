package server

import (
	"net/http"
	"strings"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/messages"
	"github.com/gin-gonic/gin"
)

type messageRequestPayload struct {
	YourName         string `json:"your_name"`
	PartnerName      string `json:"partner_name"`
	RelationshipType string `json:"relationship_type"`
	Tone             string `json:"tone"`
	Language         string `json:"language"`
}

type parsedMessageRequest struct {
	request messages.Request
	field   string
	code    string
}

func parseMessageRequest(payload messageRequestPayload) parsedMessageRequest {
	tone, err := catalog.ParseTone(payload.Tone)
	if err != nil {
		return parsedMessageRequest{field: "tone", code: "unknown_tone"}
	}
	language, err := catalog.ParseLanguage(payload.Language)
	if err != nil {
		return parsedMessageRequest{field: "language", code: "unknown_language"}
	}
	yourName := strings.TrimSpace(payload.YourName)
	if yourName == "" {
		return parsedMessageRequest{field: "your_name", code: "required"}
	}
	partnerName := strings.TrimSpace(payload.PartnerName)
	if partnerName == "" {
		return parsedMessageRequest{field: "partner_name", code: "required"}
	}
	relationship := catalog.RelationshipType("")
	if payload.RelationshipType != "" {
		relationship, err = catalog.ParseRelationshipType(payload.RelationshipType)
		if err != nil {
			return parsedMessageRequest{field: "relationship_type", code: "unknown_relationship_type"}
		}
	}
	return parsedMessageRequest{request: messages.Request{
		YourName:         yourName,
		PartnerName:      partnerName,
		RelationshipType: relationship,
		Tone:             tone,
		Language:         language,
	}}
}

func (h *httpHandler) handleGenerateMessage(c *gin.Context) {
	var payload messageRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request")
		return
	}
	parsed := parseMessageRequest(payload)
	if parsed.code != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": parsed.code, "field": parsed.field})
		return
	}

	if err := waitFor(c.Request.Context(), h.generatorDelay); err != nil {
		respondError(c, http.StatusRequestTimeout, "generation_cancelled")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.generator.Generate(parsed.request)})
}

func (h *httpHandler) handleMessageCandidates(c *gin.Context) {
	var payload messageRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request")
		return
	}
	parsed := parseMessageRequest(payload)
	if parsed.code != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": parsed.code, "field": parsed.field})
		return
	}
	request := parsed.request
	candidates := messages.Candidates(request.Tone, request.Language, request.YourName, request.PartnerName)
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
