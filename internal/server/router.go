package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/checkout"
	"github.com/MarcoPoloResearchLab/lovehub/internal/logging"
	"github.com/MarcoPoloResearchLab/lovehub/internal/messages"
	"github.com/MarcoPoloResearchLab/lovehub/internal/proposals"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultHeartbeatInterval = 25 * time.Second
	maxProposalBodyBytes     = 32 << 20
)

var (
	errMissingProposalService = errors.New("proposal service dependency required")
	errMissingCheckout        = errors.New("checkout processor dependency required")
	errMissingVoucherCheck    = errors.New("voucher validator dependency required")
	errMissingGenerator       = errors.New("message generator dependency required")
)

// CheckoutProcessor simulates payment and returns a receipt carrying a plan voucher.
type CheckoutProcessor interface {
	Checkout(ctx context.Context, plan catalog.Plan, method checkout.Method) (checkout.Receipt, error)
}

// VoucherValidator resolves a plan voucher to the plan it was issued for.
type VoucherValidator interface {
	Validate(token string) (catalog.Plan, error)
}

// MessageGenerator produces a love message for the creation form.
type MessageGenerator interface {
	Generate(request messages.Request) string
}

// Dependencies wires the HTTP handler. AdminRoutes exposes listing and deleting every stored proposal.
type Dependencies struct {
	Proposals         *proposals.Service
	Checkout          CheckoutProcessor
	Vouchers          VoucherValidator
	Generator         MessageGenerator
	Realtime          *RealtimeDispatcher
	AllowedOrigins    []string
	GeneratorDelay    time.Duration
	HeartbeatInterval time.Duration
	AdminRoutes       bool
	Logger            *zap.Logger
}

func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Proposals == nil {
		return nil, errMissingProposalService
	}
	if deps.Checkout == nil {
		return nil, errMissingCheckout
	}
	if deps.Vouchers == nil {
		return nil, errMissingVoucherCheck
	}
	if deps.Generator == nil {
		return nil, errMissingGenerator
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	realtime := deps.Realtime
	if realtime == nil {
		realtime = NewRealtimeDispatcher()
	}
	heartbeat := deps.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.RequestLogger(logger))
	router.Use(corsMiddleware(deps.AllowedOrigins))

	handler := &httpHandler{
		proposals:      deps.Proposals,
		checkout:       deps.Checkout,
		vouchers:       deps.Vouchers,
		generator:      deps.Generator,
		realtime:       realtime,
		generatorDelay: deps.GeneratorDelay,
		heartbeat:      heartbeat,
		logger:         logger,
	}

	router.GET("/healthz", handler.handleHealth)
	router.GET("/plans", handler.handlePlans)
	router.GET("/options", handler.handleOptions)
	router.POST("/checkout", handler.handleCheckout)

	messageRoutes := router.Group("/messages")
	messageRoutes.POST("/generate", handler.handleGenerateMessage)
	messageRoutes.POST("/candidates", handler.handleMessageCandidates)

	router.GET("/slugs/:slug", handler.handleCheckSlug)

	proposalRoutes := router.Group("/proposals")
	proposalRoutes.POST("", handler.handleCreateProposal)
	proposalRoutes.GET("/:id", handler.handleGetProposal)
	proposalRoutes.POST("/:id/answer", handler.handleAnswer)
	proposalRoutes.GET("/:id/events", handler.handleProposalEvents)
	if deps.AdminRoutes {
		proposalRoutes.GET("", handler.handleListProposals)
		proposalRoutes.DELETE("/:id", handler.handleDeleteProposal)
	}

	return router, nil
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	return cors.New(config)
}

type httpHandler struct {
	proposals      *proposals.Service
	checkout       CheckoutProcessor
	vouchers       VoucherValidator
	generator      MessageGenerator
	realtime       *RealtimeDispatcher
	generatorDelay time.Duration
	heartbeat      time.Duration
	logger         *zap.Logger
}

func (h *httpHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondError(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{"error": code})
}

// waitFor pauses for delay unless the request goes away first.
func waitFor(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
