package server

import (
	"context"
	"sync"
	"time"
)

const (
	RealtimeEventAnswer    = "answer"
	realtimeEventHeartbeat = "heartbeat"
	realtimeSourceBackend  = "lovehub-backend"
	realtimeBufferSize     = 16
)

// RealtimeMessage is an event fanned out to the subscribers of one proposal.
type RealtimeMessage struct {
	ProposalID  string
	EventType   string
	PartnerName string
	Answer      string
	Timestamp   time.Time
}

// RealtimeDispatcher fans proposal events out to in-process subscribers.
// Slow subscribers drop messages instead of blocking publishers.
type RealtimeDispatcher struct {
	mu          sync.RWMutex
	subscribers map[string]map[int64]*realtimeSubscriber
	nextID      int64
	bufferSize  int
}

type realtimeSubscriber struct {
	id     int64
	stream chan RealtimeMessage
}

func NewRealtimeDispatcher() *RealtimeDispatcher {
	return &RealtimeDispatcher{
		subscribers: make(map[string]map[int64]*realtimeSubscriber),
		bufferSize:  realtimeBufferSize,
	}
}

// Subscribe registers a listener for proposalID until ctx ends or cleanup is called.
func (d *RealtimeDispatcher) Subscribe(ctx context.Context, proposalID string) (<-chan RealtimeMessage, func()) {
	if proposalID == "" {
		ch := make(chan RealtimeMessage)
		close(ch)
		return ch, func() {}
	}
	subscriber := &realtimeSubscriber{
		id:     d.nextSequence(),
		stream: make(chan RealtimeMessage, d.bufferSize),
	}
	d.registerSubscriber(proposalID, subscriber)
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			d.unregisterSubscriber(proposalID, subscriber.id)
		})
	}
	go func() {
		<-ctx.Done()
		cleanup()
	}()
	return subscriber.stream, cleanup
}

// Publish delivers message to every current subscriber of its proposal.
func (d *RealtimeDispatcher) Publish(message RealtimeMessage) {
	if message.ProposalID == "" || message.EventType == "" {
		return
	}
	d.mu.RLock()
	subscribers := d.subscribers[message.ProposalID]
	if len(subscribers) == 0 {
		d.mu.RUnlock()
		return
	}
	copies := make([]*realtimeSubscriber, 0, len(subscribers))
	for _, subscriber := range subscribers {
		copies = append(copies, subscriber)
	}
	d.mu.RUnlock()
	for _, subscriber := range copies {
		select {
		case subscriber.stream <- message:
		default:
		}
	}
}

// SubscriberCount reports how many listeners are attached to proposalID.
func (d *RealtimeDispatcher) SubscriberCount(proposalID string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers[proposalID])
}

func (d *RealtimeDispatcher) nextSequence() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	return d.nextID
}

func (d *RealtimeDispatcher) registerSubscriber(proposalID string, subscriber *realtimeSubscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.subscribers[proposalID]; !ok {
		d.subscribers[proposalID] = make(map[int64]*realtimeSubscriber)
	}
	d.subscribers[proposalID][subscriber.id] = subscriber
}

func (d *RealtimeDispatcher) unregisterSubscriber(proposalID string, subscriberID int64) {
	d.mu.Lock()
	subscribers := d.subscribers[proposalID]
	if subscribers != nil {
		delete(subscribers, subscriberID)
		if len(subscribers) == 0 {
			delete(d.subscribers, proposalID)
		}
	}
	d.mu.Unlock()
}
