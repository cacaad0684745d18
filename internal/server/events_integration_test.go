package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/storage"
)

func TestProposalEventStreamEmitsAnswer(t *testing.T) {
	server := newTestServer(t, storage.NewMemoryAccessor())
	created := server.do(t, http.MethodPost, "/proposals", proposalBody(t, server.voucher(t, catalog.PlanPremium), nil))
	if created.Code != http.StatusCreated {
		t.Fatalf("failed to create proposal: %d %s", created.Code, created.Body.String())
	}

	httpServer := httptest.NewServer(server.handler)
	t.Cleanup(httpServer.Close)

	streamResp, err := http.Get(httpServer.URL + "/proposals/sam-and-alex/events")
	if err != nil {
		t.Fatalf("failed to open stream: %v", err)
	}
	t.Cleanup(func() {
		_ = streamResp.Body.Close()
	})
	if streamResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected stream status: %d", streamResp.StatusCode)
	}
	if !strings.HasPrefix(streamResp.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("unexpected content type %q", streamResp.Header.Get("Content-Type"))
	}

	deadline := time.Now().Add(2 * time.Second)
	for server.realtime.SubscriberCount("sam-and-alex") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	answerResp, err := http.Post(httpServer.URL+"/proposals/sam-and-alex/answer", "application/json", bytes.NewBufferString(`{"answer":"yes"}`))
	if err != nil {
		t.Fatalf("answer request failed: %v", err)
	}
	_ = answerResp.Body.Close()
	if answerResp.StatusCode != http.StatusAccepted {
		t.Fatalf("unexpected answer status: %d", answerResp.StatusCode)
	}

	streamReader := bufio.NewReader(streamResp.Body)
	currentEventType := ""
	timeout := time.After(5 * time.Second)
	type readResult struct {
		line string
		err  error
	}
	for {
		resultCh := make(chan readResult, 1)
		go func() {
			line, err := streamReader.ReadString('\n')
			resultCh <- readResult{line: line, err: err}
		}()
		select {
		case <-timeout:
			t.Fatal("timed out waiting for answer event")
		case res := <-resultCh:
			if res.err != nil {
				t.Fatalf("failed to read stream: %v", res.err)
			}
			line := strings.TrimSpace(res.line)
			if strings.HasPrefix(line, "event:") {
				currentEventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
				continue
			}
			if !strings.HasPrefix(line, "data:") || currentEventType != RealtimeEventAnswer {
				continue
			}
			var payload answerEventPayload
			if err := json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &payload); err != nil {
				t.Fatalf("failed to decode event payload: %v", err)
			}
			if payload.ProposalID != "sam-and-alex" || payload.PartnerName != "Alex" || payload.Answer != "yes" {
				t.Fatalf("unexpected answer payload %+v", payload)
			}
			if payload.Source != realtimeSourceBackend {
				t.Fatalf("unexpected source %q", payload.Source)
			}
			return
		}
	}
}
