package callsession

import (
	"context"
	"sync"
	"testing"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
)

func TestGetOrCreateIdempotent(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, "call-1")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if first.CurrentAgent != agents.LeadQualifier {
		t.Errorf("new session agent = %q, want leadQualifier", first.CurrentAgent)
	}
	if first.Status != StatusActive {
		t.Errorf("new session status = %q, want active", first.Status)
	}

	second, err := store.GetOrCreate(ctx, "call-1")
	if err != nil {
		t.Fatalf("GetOrCreate (repeat) error: %v", err)
	}
	if second.StartedAt != first.StartedAt {
		t.Error("repeat GetOrCreate produced a different session")
	}
}

func TestGetOrCreateRequiresID(t *testing.T) {
	store := NewMemoryStore(nil)
	if _, err := store.GetOrCreate(context.Background(), ""); err != ErrMissingCallID {
		t.Errorf("expected ErrMissingCallID, got %v", err)
	}
}

func TestRecordTransferUpdatesAgentAndHistory(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	sess, err := store.RecordTransfer(ctx, "call-2", agents.LeadQualifier, agents.SalesAgent, "qualified")
	if err != nil {
		t.Fatalf("RecordTransfer error: %v", err)
	}
	if sess.CurrentAgent != agents.SalesAgent {
		t.Errorf("CurrentAgent = %q, want salesAgent", sess.CurrentAgent)
	}
	if len(sess.TransferHistory) != 1 {
		t.Fatalf("TransferHistory len = %d, want 1", len(sess.TransferHistory))
	}
	entry := sess.TransferHistory[0]
	if entry.From != agents.LeadQualifier || entry.To != agents.SalesAgent || entry.Reason != "qualified" {
		t.Errorf("unexpected transfer entry: %+v", entry)
	}
}

func TestRecordTransferConcurrentNoLostUpdates(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.RecordTransfer(ctx, "call-3", agents.SalesAgent, agents.Manager, "escalation"); err != nil {
				t.Errorf("RecordTransfer error: %v", err)
			}
		}()
	}
	wg.Wait()

	sess, err := store.GetOrCreate(ctx, "call-3")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if len(sess.TransferHistory) != n {
		t.Errorf("TransferHistory len = %d, want %d (lost updates)", len(sess.TransferHistory), n)
	}
}

func TestContextGrowsMonotonically(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	if _, err := store.AppendContext(ctx, "call-4", map[string]string{"intent": "browse"}); err != nil {
		t.Fatalf("AppendContext error: %v", err)
	}
	sess, err := store.AppendContext(ctx, "call-4", map[string]string{"urgency": "high"})
	if err != nil {
		t.Fatalf("AppendContext error: %v", err)
	}

	if sess.Context["intent"] != "browse" {
		t.Error("earlier context key was dropped")
	}
	if sess.Context["urgency"] != "high" {
		t.Error("new context key missing")
	}

	rc := sess.RouteContext()
	if rc.Intent != "browse" || rc.Urgency != "high" {
		t.Errorf("RouteContext = %+v", rc)
	}
}

func TestCompleteThenLateTransferAccepted(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	sess, err := store.Complete(ctx, "call-5", "qualified", "ready to buy")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if sess.Status != StatusCompleted || sess.Outcome != "qualified" {
		t.Errorf("unexpected completed session: %+v", sess)
	}

	// A transfer arriving after completion must not error; it is recorded and
	// only logged as anomalous.
	late, err := store.RecordTransfer(ctx, "call-5", agents.SalesAgent, agents.FollowUpAgent, "late event")
	if err != nil {
		t.Fatalf("late RecordTransfer error: %v", err)
	}
	if len(late.TransferHistory) != 1 {
		t.Errorf("late transfer not recorded")
	}
	if late.Status != StatusCompleted {
		t.Errorf("late transfer reopened the session: %q", late.Status)
	}
}

func TestCompleteUnknownCallCreatesSession(t *testing.T) {
	store := NewMemoryStore(nil)
	sess, err := store.Complete(context.Background(), "call-6", "abandoned", "")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if sess.ID != "call-6" || sess.Status != StatusCompleted {
		t.Errorf("unexpected session: %+v", sess)
	}
}
