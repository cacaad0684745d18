package server

import (
	"context"
	"testing"
	"time"
)

func TestRealtimeDispatcherPublishesToSubscriber(t *testing.T) {
	dispatcher := NewRealtimeDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, cleanup := dispatcher.Subscribe(ctx, "sam-loves-alex")
	defer cleanup()

	dispatcher.Publish(RealtimeMessage{
		ProposalID:  "sam-loves-alex",
		EventType:   RealtimeEventAnswer,
		PartnerName: "Alex",
		Answer:      "yes",
		Timestamp:   time.Now().UTC(),
	})

	select {
	case received := <-stream:
		if received.EventType != RealtimeEventAnswer {
			t.Fatalf("expected event type %s, got %s", RealtimeEventAnswer, received.EventType)
		}
		if received.PartnerName != "Alex" || received.Answer != "yes" {
			t.Fatalf("unexpected message %+v", received)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected realtime message within deadline")
	}
}

func TestRealtimeDispatcherIsolatedByProposal(t *testing.T) {
	dispatcher := NewRealtimeDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proposalStream, cleanup := dispatcher.Subscribe(ctx, "first")
	defer cleanup()
	otherStream, otherCleanup := dispatcher.Subscribe(ctx, "second")
	defer otherCleanup()

	dispatcher.Publish(RealtimeMessage{ProposalID: "second", EventType: RealtimeEventAnswer, Timestamp: time.Now().UTC()})

	select {
	case <-proposalStream:
		t.Fatal("did not expect realtime message for unrelated proposal")
	case <-time.After(200 * time.Millisecond):
	}

	select {
	case msg := <-otherStream:
		if msg.ProposalID != "second" {
			t.Fatalf("expected second, received %s", msg.ProposalID)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected realtime message for subscribed proposal")
	}
}

func TestRealtimeDispatcherUnsubscribesOnContextEnd(t *testing.T) {
	dispatcher := NewRealtimeDispatcher()
	ctx, cancel := context.WithCancel(context.Background())

	_, cleanup := dispatcher.Subscribe(ctx, "first")
	defer cleanup()
	if count := dispatcher.SubscriberCount("first"); count != 1 {
		t.Fatalf("expected one subscriber, got %d", count)
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for dispatcher.SubscriberCount("first") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber was not removed after cancellation")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRealtimeDispatcherDropsWhenBufferFull(t *testing.T) {
	dispatcher := NewRealtimeDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, cleanup := dispatcher.Subscribe(ctx, "busy")
	defer cleanup()

	for range realtimeBufferSize + 4 {
		dispatcher.Publish(RealtimeMessage{ProposalID: "busy", EventType: RealtimeEventAnswer})
	}
	if len(stream) != realtimeBufferSize {
		t.Fatalf("expected buffer to cap at %d, got %d", realtimeBufferSize, len(stream))
	}
}

func TestRealtimeDispatcherEmptyProposalClosesImmediately(t *testing.T) {
	dispatcher := NewRealtimeDispatcher()
	stream, cleanup := dispatcher.Subscribe(context.Background(), "")
	defer cleanup()
	if _, open := <-stream; open {
		t.Fatal("expected closed stream for empty proposal id")
	}
}
