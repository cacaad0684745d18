package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type answerEventPayload struct {
	ProposalID  string `json:"proposalId"`
	PartnerName string `json:"partnerName"`
	Answer      string `json:"answer"`
	Timestamp   string `json:"timestamp"`
	Source      string `json:"source"`
}

type heartbeatEventPayload struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// handleProposalEvents streams answer events for a single proposal as server-sent events.
func (h *httpHandler) handleProposalEvents(c *gin.Context) {
	id := c.Param("id")
	if _, found := h.proposals.Store().Get(c.Request.Context(), id); !found {
		respondError(c, http.StatusNotFound, "proposal_not_found")
		return
	}

	stream, cleanup := h.realtime.Subscribe(c.Request.Context(), id)
	defer cleanup()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case message, ok := <-stream:
			if !ok {
				return false
			}
			c.SSEvent(message.EventType, answerEventPayload{
				ProposalID:  message.ProposalID,
				PartnerName: message.PartnerName,
				Answer:      message.Answer,
				Timestamp:   message.Timestamp.UTC().Format(time.RFC3339),
				Source:      realtimeSourceBackend,
			})
			return true
		case tick := <-ticker.C:
			c.SSEvent(realtimeEventHeartbeat, heartbeatEventPayload{
				Timestamp: tick.UTC().Format(time.RFC3339),
				Source:    realtimeSourceBackend,
			})
			return true
		}
	})
}
