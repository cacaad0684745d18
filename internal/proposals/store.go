package proposals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/storage"
	"go.uber.org/zap"
)

// DefaultStorageKey names the accessor entry holding the proposal collection.
const DefaultStorageKey = "lovehub_proposals"

const (
	proposalPathPrefix = "/proposal/"
	whatsAppShareBase  = "https://wa.me/?text="
)

// ErrPersistence indicates that the collection could not be read for a write or written back.
var ErrPersistence = errors.New("proposals: persistence unavailable")

// StoreConfig describes the collaborators of a Store.
type StoreConfig struct {
	Accessor storage.Accessor
	Key      string
	Random   RandomSource
	Clock    func() time.Time
	// Origin is the scheme and host share URLs are built on, e.g. https://lovehub.example.
	Origin string
	Logger *zap.Logger
}

// Store persists proposal records as one JSON array under a single accessor key.
type Store struct {
	mu       sync.Mutex
	accessor storage.Accessor
	key      string
	random   RandomSource
	clock    func() time.Time
	origin   string
	logger   *zap.Logger
}

// NewStore constructs a Store. A nil accessor yields a store that reads empty and fails writes.
func NewStore(cfg StoreConfig) *Store {
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = DefaultStorageKey
	}
	random := cfg.Random
	if random == nil {
		random = DefaultRandomSource()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	return &Store{
		accessor: cfg.Accessor,
		key:      key,
		random:   random,
		clock:    clock,
		origin:   strings.TrimRight(strings.TrimSpace(cfg.Origin), "/"),
		logger:   logger,
	}
}

// Key returns the accessor key the collection is stored under.
func (s *Store) Key() string {
	return s.key
}

// Create assigns an id, stamps the creation time and appends the record.
// The custom slug becomes the id verbatim; format and availability are the caller's concern.
func (s *Store) Create(ctx context.Context, draft Draft) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	id := draft.CustomSlug
	if id == "" {
		id, err = s.allocateToken(records)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	records = append(records, draft.toRecord(id, s.clock().UTC()))
	if err := s.save(ctx, records); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the record with the exact id.
func (s *Store) Get(ctx context.Context, id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.loadOrEmpty(ctx) {
		if record.ID == id {
			return record, true
		}
	}
	return Record{}, false
}

// ListAll returns every record in insertion order.
func (s *Store) ListAll(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrEmpty(ctx)
}

// Delete removes the first record with the given id and reports whether one was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	index := -1
	for i, record := range records {
		if record.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false, nil
	}

	records = append(records[:index], records[index+1:]...)
	if err := s.save(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

// IsAvailable reports whether no record uses slug as its id.
func (s *Store) IsAvailable(ctx context.Context, slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !containsID(s.loadOrEmpty(ctx), slug)
}

// URLFor builds the share URL of the reveal page for id.
func (s *Store) URLFor(id string) string {
	return s.origin + proposalPathPrefix + id
}

// ShareURL builds a WhatsApp deep link carrying a pre-filled invitation to the reveal page.
func (s *Store) ShareURL(id, partnerName string) string {
	text := fmt.Sprintf("Hey %s! I have something special for you. Open this link: %s", partnerName, s.URLFor(id))
	return whatsAppShareBase + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func (s *Store) allocateToken(records []Record) (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token := newToken(s.random)
		if token != "" && !containsID(records, token) {
			return token, nil
		}
		s.logger.Debug("proposal token rejected", zap.Int("attempt", attempt), zap.String("token", token))
	}
	token, err := fallbackToken()
	if err != nil {
		return "", err
	}
	return token, nil
}

// load reads the collection. A missing or blank entry is an empty collection;
// an accessor failure or an unparseable payload is ErrPersistence so writers never overwrite it.
func (s *Store) load(ctx context.Context) ([]Record, error) {
	if s.accessor == nil {
		return []Record{}, nil
	}
	raw, found, err := s.accessor.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("proposal collection unreadable", zap.String("key", s.key), zap.Error(err))
		return nil, fmt.Errorf("%w: read: %v", ErrPersistence, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []Record{}, nil
	}
	records, err := DecodeCollection(raw)
	if err != nil {
		s.logger.Warn("proposal collection unparseable", zap.String("key", s.key), zap.Error(err))
		return nil, fmt.Errorf("%w: decode: %v", ErrPersistence, err)
	}
	return records, nil
}

func (s *Store) loadOrEmpty(ctx context.Context) []Record {
	records, err := s.load(ctx)
	if err != nil {
		return []Record{}
	}
	return records
}

func (s *Store) save(ctx context.Context, records []Record) error {
	if s.accessor == nil {
		return fmt.Errorf("%w: no accessor configured", ErrPersistence)
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if err := s.accessor.Set(ctx, s.key, string(encoded)); err != nil {
		s.logger.Error("proposal collection write failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// DecodeCollection parses a stored proposal collection.
func DecodeCollection(raw string) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func containsID(records []Record, id string) bool {
	for _, record := range records {
		if record.ID == id {
			return true
		}
	}
	return false
}
