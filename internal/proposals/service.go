package proposals

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"go.uber.org/zap"
)

var (
	errMissingStore = errors.New("proposal store is required")
	// ErrSlugTaken indicates that a custom slug is already used as a proposal id.
	ErrSlugTaken = errors.New("proposals: slug already taken")
	// ErrNotFound indicates that no proposal has the requested id.
	ErrNotFound = errors.New("proposals: not found")
	noOpLogger  = zap.NewNop()
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

const (
	opServiceNew    = "proposals.service.new"
	opCreate        = "proposals.create"
	opDelete        = "proposals.delete"
	opRecordAnswer  = "proposals.record_answer"
	revealQuestion  = "Will you be mine forever?"
	dataImagePrefix = "data:image/"

	// SlugInvalidReason is shown when a slug contains disallowed characters.
	SlugInvalidReason = "Only lowercase letters, numbers, and hyphens allowed"
	// SlugTakenReason is shown when a slug already addresses a proposal.
	SlugTakenReason = "This URL is already taken"
)

// ServiceError carries a dotted failure code such as proposals.create.persist_failed.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

// ValidationError reports a rejected creation field.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("proposals: invalid %s: %s", e.Field, e.Code)
}

func invalid(field, code string) error {
	return &ValidationError{Field: field, Code: code}
}

// ServiceConfig describes the dependencies of the creation flow.
type ServiceConfig struct {
	Store  *Store
	Logger *zap.Logger
}

// Service implements the creation, reveal and answer flows on top of a Store.
type Service struct {
	store    *Store
	logger   *zap.Logger
	createMu sync.Mutex
}

// NewService constructs the proposal service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, newServiceError(opServiceNew, "missing_store", errMissingStore)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	return &Service{store: cfg.Store, logger: logger}, nil
}

// Store exposes the underlying record store.
func (s *Service) Store() *Store {
	return s.store
}

// CreateRequest is the assembled output of the creation form.
type CreateRequest struct {
	Plan             catalog.Plan
	YourName         string
	PartnerName      string
	RelationshipType catalog.RelationshipType
	Tone             catalog.Tone
	Language         catalog.Language
	Message          string
	Photos           []string
	PhotoCaptions    []string
	BackgroundMusic  string
	CustomSlug       string
}

// Created describes a persisted proposal and where to share it.
type Created struct {
	ID       string
	URL      string
	ShareURL string
}

// CreateProposal validates the request against its plan, persists it and returns the share links.
func (s *Service) CreateProposal(ctx context.Context, request CreateRequest) (Created, error) {
	draft, err := buildDraft(request)
	if err != nil {
		return Created{}, err
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	if draft.CustomSlug != "" && !s.store.IsAvailable(ctx, draft.CustomSlug) {
		return Created{}, ErrSlugTaken
	}

	id, err := s.store.Create(ctx, draft)
	if err != nil {
		s.logError(opCreate, "persist_failed", err, zap.String("plan", string(draft.Plan)))
		return Created{}, newServiceError(opCreate, "persist_failed", err)
	}

	s.logger.Info("proposal created",
		zap.String("proposal_id", id),
		zap.String("plan", string(draft.Plan)),
		zap.Int("photos", len(draft.Photos)))

	return Created{
		ID:       id,
		URL:      s.store.URLFor(id),
		ShareURL: s.store.ShareURL(id, draft.PartnerName),
	}, nil
}

func buildDraft(request CreateRequest) (Draft, error) {
	if !request.Plan.Valid() {
		return Draft{}, invalid("plan", "unknown_plan")
	}
	limits := request.Plan.Limits()

	yourName := strings.TrimSpace(request.YourName)
	if yourName == "" {
		return Draft{}, invalid("your_name", "required")
	}
	partnerName := strings.TrimSpace(request.PartnerName)
	if partnerName == "" {
		return Draft{}, invalid("partner_name", "required")
	}
	if !request.RelationshipType.Valid() {
		return Draft{}, invalid("relationship_type", "unknown_relationship_type")
	}
	if !request.Tone.Valid() {
		return Draft{}, invalid("tone", "unknown_tone")
	}
	if !request.Language.Valid() {
		return Draft{}, invalid("language", "unknown_language")
	}
	if strings.TrimSpace(request.Message) == "" {
		return Draft{}, invalid("message", "required")
	}

	if len(request.Photos) == 0 {
		return Draft{}, invalid("photos", "required")
	}
	if len(request.Photos) > limits.MaxPhotos {
		return Draft{}, invalid("photos", "exceeds_plan_limit")
	}
	for _, photo := range request.Photos {
		if !strings.HasPrefix(photo, dataImagePrefix) {
			return Draft{}, invalid("photos", "not_an_image_data_url")
		}
	}
	captions, err := alignCaptions(request.PhotoCaptions, len(request.Photos))
	if err != nil {
		return Draft{}, err
	}

	music := catalog.MusicNone
	if limits.HasMusic {
		music = strings.TrimSpace(request.BackgroundMusic)
		if music == "" {
			music = catalog.MusicNone
		}
		if !catalog.IsMusicOption(music) {
			return Draft{}, invalid("background_music", "unknown_music")
		}
	}

	slug := ""
	if limits.HasCustomSlug {
		slug = strings.TrimSpace(request.CustomSlug)
		if slug != "" && !ValidSlug(slug) {
			return Draft{}, invalid("custom_slug", "invalid_slug")
		}
	}

	return Draft{
		YourName:         yourName,
		PartnerName:      partnerName,
		RelationshipType: request.RelationshipType,
		Tone:             request.Tone,
		Language:         request.Language,
		Message:          request.Message,
		Photos:           request.Photos,
		PhotoCaptions:    captions,
		BackgroundMusic:  music,
		CustomSlug:       slug,
		Plan:             request.Plan,
	}, nil
}

// alignCaptions pads missing captions with empty strings; extra captions are rejected.
func alignCaptions(captions []string, photoCount int) ([]string, error) {
	if len(captions) > photoCount {
		return nil, invalid("photo_captions", "more_captions_than_photos")
	}
	aligned := make([]string, photoCount)
	copy(aligned, captions)
	return aligned, nil
}

// ValidSlug reports whether slug uses only lowercase letters, digits and hyphens.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// SlugStatus is the outcome of a slug check.
type SlugStatus struct {
	Slug      string
	Valid     bool
	Available bool
	Reason    string
}

// CheckSlug validates the slug format and, when valid, its availability.
func (s *Service) CheckSlug(ctx context.Context, slug string) SlugStatus {
	status := SlugStatus{Slug: slug}
	if !ValidSlug(slug) {
		status.Reason = SlugInvalidReason
		return status
	}
	status.Valid = true
	status.Available = s.store.IsAvailable(ctx, slug)
	if !status.Available {
		status.Reason = SlugTakenReason
	}
	return status
}

// Reveal is a record plus the presentation switches its plan unlocks.
type Reveal struct {
	Record          Record
	ShowMusic       bool
	Slideshow       bool
	Confetti        bool
	AnimatedButtons bool
	Question        string
}

// Reveal loads a proposal for the reveal page.
func (s *Service) Reveal(ctx context.Context, id string) (Reveal, bool) {
	record, found := s.store.Get(ctx, id)
	if !found {
		return Reveal{}, false
	}
	limits := record.Limits()
	return Reveal{
		Record:          record,
		ShowMusic:       limits.HasMusic && record.BackgroundMusic != "" && record.BackgroundMusic != catalog.MusicNone,
		Slideshow:       limits.HasSlideshow && len(record.Photos) > 0,
		Confetti:        limits.HasConfetti,
		AnimatedButtons: limits.HasAnimatedButtons,
		Question:        revealQuestion,
	}, true
}

// List returns every stored proposal.
func (s *Service) List(ctx context.Context) []Record {
	return s.store.ListAll(ctx)
}

// Delete removes a proposal, returning ErrNotFound when the id is unknown.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logError(opDelete, "persist_failed", err, zap.String("proposal_id", id))
		return newServiceError(opDelete, "persist_failed", err)
	}
	if !removed {
		return ErrNotFound
	}
	s.logger.Info("proposal deleted", zap.String("proposal_id", id))
	return nil
}

// Answer is the partner's response on the reveal page.
type Answer string

// AnswerYes is the only answer the reveal page can submit.
const AnswerYes Answer = "yes"

// AnswerEvent describes a recorded answer for subscribers of a proposal.
type AnswerEvent struct {
	ProposalID  string
	PartnerName string
	Answer      Answer
	AnsweredAt  time.Time
}

// RecordAnswer accepts the partner's answer for an existing proposal.
func (s *Service) RecordAnswer(ctx context.Context, id string, answer Answer) (AnswerEvent, error) {
	if answer != AnswerYes {
		return AnswerEvent{}, invalid("answer", "unsupported_answer")
	}
	record, found := s.store.Get(ctx, id)
	if !found {
		return AnswerEvent{}, ErrNotFound
	}
	event := AnswerEvent{
		ProposalID:  record.ID,
		PartnerName: record.PartnerName,
		Answer:      answer,
		AnsweredAt:  s.store.clock().UTC(),
	}
	s.logger.Info("proposal answered",
		zap.String("operation", opRecordAnswer),
		zap.String("proposal_id", record.ID),
		zap.String("answer", string(answer)))
	return event, nil
}

func (s *Service) loggerOrDefault() *zap.Logger {
	if s == nil || s.logger == nil {
		return noOpLogger
	}
	return s.logger
}

func (s *Service) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.loggerOrDefault().Error("proposals service error", attrs...)
}
