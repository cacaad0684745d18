package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/checkout"
	"github.com/MarcoPoloResearchLab/lovehub/internal/proposals"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createProposalRequestPayload struct {
	Voucher          string   `json:"voucher"`
	YourName         string   `json:"your_name"`
	PartnerName      string   `json:"partner_name"`
	RelationshipType string   `json:"relationship_type"`
	Tone             string   `json:"tone"`
	Language         string   `json:"language"`
	Message          string   `json:"message"`
	Photos           []string `json:"photos"`
	PhotoCaptions    []string `json:"photo_captions"`
	BackgroundMusic  string   `json:"background_music"`
	CustomSlug       string   `json:"custom_slug"`
}

type createProposalResponsePayload struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	ShareURL string `json:"share_url"`
}

type proposalPayload struct {
	ID               string    `json:"id"`
	YourName         string    `json:"your_name"`
	PartnerName      string    `json:"partner_name"`
	RelationshipType string    `json:"relationship_type"`
	Tone             string    `json:"tone"`
	Language         string    `json:"language"`
	Message          string    `json:"message"`
	Photos           []string  `json:"photos"`
	PhotoCaptions    []string  `json:"photo_captions"`
	BackgroundMusic  string    `json:"background_music"`
	CustomSlug       string    `json:"custom_slug,omitempty"`
	Plan             string    `json:"plan"`
	CreatedAt        time.Time `json:"created_at"`
}

type revealResponsePayload struct {
	Proposal        proposalPayload `json:"proposal"`
	URL             string          `json:"url"`
	Question        string          `json:"question"`
	ShowMusic       bool            `json:"show_music"`
	Slideshow       bool            `json:"slideshow"`
	Confetti        bool            `json:"confetti"`
	AnimatedButtons bool            `json:"animated_buttons"`
}

type answerRequestPayload struct {
	Answer string `json:"answer"`
}

type answerResponsePayload struct {
	ProposalID string    `json:"proposal_id"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answered_at"`
}

type slugResponsePayload struct {
	Slug      string `json:"slug"`
	Valid     bool   `json:"valid"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func newProposalPayload(record proposals.Record) proposalPayload {
	return proposalPayload{
		ID:               record.ID,
		YourName:         record.YourName,
		PartnerName:      record.PartnerName,
		RelationshipType: string(record.RelationshipType),
		Tone:             string(record.Tone),
		Language:         string(record.Language),
		Message:          record.Message,
		Photos:           record.Photos,
		PhotoCaptions:    record.PhotoCaptions,
		BackgroundMusic:  record.BackgroundMusic,
		CustomSlug:       record.CustomSlug,
		Plan:             string(record.Plan),
		CreatedAt:        record.CreatedAt,
	}
}

func normalizeOption(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (h *httpHandler) handleCreateProposal(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxProposalBodyBytes)

	var request createProposalRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
		respondError(c, http.StatusBadRequest, "invalid_request")
		return
	}

	plan, err := h.vouchers.Validate(request.Voucher)
	if err != nil {
		h.logger.Warn("plan voucher rejected", zap.Error(err))
		switch {
		case errors.Is(err, checkout.ErrMissingVoucher):
			respondError(c, http.StatusPaymentRequired, "voucher_required")
		case errors.Is(err, checkout.ErrExpiredVoucher):
			respondError(c, http.StatusPaymentRequired, "voucher_expired")
		default:
			respondError(c, http.StatusPaymentRequired, "invalid_voucher")
		}
		return
	}

	created, err := h.proposals.CreateProposal(c.Request.Context(), proposals.CreateRequest{
		Plan:             plan,
		YourName:         request.YourName,
		PartnerName:      request.PartnerName,
		RelationshipType: catalog.RelationshipType(normalizeOption(request.RelationshipType)),
		Tone:             catalog.Tone(normalizeOption(request.Tone)),
		Language:         catalog.Language(normalizeOption(request.Language)),
		Message:          request.Message,
		Photos:           request.Photos,
		PhotoCaptions:    request.PhotoCaptions,
		BackgroundMusic:  normalizeOption(request.BackgroundMusic),
		CustomSlug:       request.CustomSlug,
	})
	if err != nil {
		h.respondProposalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createProposalResponsePayload{
		ID:       created.ID,
		URL:      created.URL,
		ShareURL: created.ShareURL,
	})
}

func (h *httpHandler) respondProposalError(c *gin.Context, err error) {
	var validationErr *proposals.ValidationError
	var serviceErr *proposals.ServiceError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Code, "field": validationErr.Field})
	case errors.Is(err, proposals.ErrSlugTaken):
		respondError(c, http.StatusConflict, "slug_taken")
	case errors.Is(err, proposals.ErrNotFound):
		respondError(c, http.StatusNotFound, "proposal_not_found")
	case errors.As(err, &serviceErr):
		h.logger.Error("proposal operation failed", zap.String("code", serviceErr.Code()), zap.Error(err))
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable")
	default:
		h.logger.Error("proposal operation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error")
	}
}

func (h *httpHandler) handleListProposals(c *gin.Context) {
	records := h.proposals.List(c.Request.Context())
	response := make([]proposalPayload, 0, len(records))
	for _, record := range records {
		response = append(response, newProposalPayload(record))
	}
	c.JSON(http.StatusOK, gin.H{"proposals": response})
}

func (h *httpHandler) handleGetProposal(c *gin.Context) {
	id := c.Param("id")
	reveal, found := h.proposals.Reveal(c.Request.Context(), id)
	if !found {
		respondError(c, http.StatusNotFound, "proposal_not_found")
		return
	}
	c.JSON(http.StatusOK, revealResponsePayload{
		Proposal:        newProposalPayload(reveal.Record),
		URL:             h.proposals.Store().URLFor(reveal.Record.ID),
		Question:        reveal.Question,
		ShowMusic:       reveal.ShowMusic,
		Slideshow:       reveal.Slideshow,
		Confetti:        reveal.Confetti,
		AnimatedButtons: reveal.AnimatedButtons,
	})
}

func (h *httpHandler) handleDeleteProposal(c *gin.Context) {
	if err := h.proposals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondProposalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleCheckSlug(c *gin.Context) {
	status := h.proposals.CheckSlug(c.Request.Context(), c.Param("slug"))
	c.JSON(http.StatusOK, slugResponsePayload{
		Slug:      status.Slug,
		Valid:     status.Valid,
		Available: status.Available,
		Reason:    status.Reason,
	})
}

func (h *httpHandler) handleAnswer(c *gin.Context) {
	var request answerRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request")
		return
	}
	answer := proposals.Answer(normalizeOption(request.Answer))
	event, err := h.proposals.RecordAnswer(c.Request.Context(), c.Param("id"), answer)
	if err != nil {
		h.respondProposalError(c, err)
		return
	}

	h.realtime.Publish(RealtimeMessage{
		ProposalID:  event.ProposalID,
		EventType:   RealtimeEventAnswer,
		PartnerName: event.PartnerName,
		Answer:      string(event.Answer),
		Timestamp:   event.AnsweredAt,
	})

	c.JSON(http.StatusAccepted, answerResponsePayload{
		ProposalID: event.ProposalID,
		Answer:     string(event.Answer),
		AnsweredAt: event.AnsweredAt,
	})
}
