package comms

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
)

func testSalesperson() agents.Salesperson {
	return agents.Salesperson{
		Name:  "Sarah Johnson",
		Email: "sarah.johnson@wheelhousemotors.com",
		Phone: "+1-555-0124",
	}
}

func fullProfile() *crm.CustomerProfile {
	return &crm.CustomerProfile{
		ID:            "cust-1",
		PhoneNumber:   "+15551234567",
		Name:          "Dana Fields",
		Email:         "dana@example.com",
		Budget:        35000,
		PreferredMake: "Honda",
	}
}

func TestPlanAfterCallSchedulesAllRules(t *testing.T) {
	store := NewMemoryStore()
	planner := NewPlanner(store, nil)

	msgs, err := planner.PlanAfterCall(context.Background(), PlanInput{
		CallID:      "call-1",
		Profile:     fullProfile(),
		Salesperson: testSalesperson(),
		LinkURL:     "https://wheelhousemotors.example/inventory/view/abc123",
		Vehicles: []inventory.Vehicle{
			{Year: 2024, Make: "Honda", Model: "Accord", Price: 28500, Mileage: 15, StockNumber: "A1001"},
		},
	})
	require.NoError(t, err)

	// Immediate SMS + summary email + 3 buyer tips.
	require.Len(t, msgs, 5)

	assert.Equal(t, ChannelSMS, msgs[0].Channel)
	assert.Equal(t, KindInventoryLink, msgs[0].Kind)
	assert.Contains(t, msgs[0].Body, "https://wheelhousemotors.example/inventory/view/abc123")
	assert.Contains(t, msgs[0].Body, "Sarah Johnson")

	assert.Equal(t, KindClientSummary, msgs[1].Kind)
	assert.Equal(t, "dana@example.com", msgs[1].Recipient)
	assert.Equal(t, "Your Vehicle Search Results - Honda Options Available", msgs[1].Subject)
	assert.Contains(t, msgs[1].Body, "Stock #A1001")
	assert.InDelta(t, DefaultSummaryDelay.Seconds(), msgs[1].ScheduledAt.Sub(msgs[0].ScheduledAt).Seconds(), 1)

	for i, m := range msgs[2:] {
		assert.Equal(t, KindEducation, m.Kind)
		assert.Equal(t, CampaignBuyerTips, m.Campaign)
		assert.Equal(t, i+1, m.Sequence)
	}

	// Sorted by scheduled time.
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].ScheduledAt.Before(msgs[i-1].ScheduledAt))
	}
}

func TestPlanAfterCallWithoutEmailSchedulesNoEmails(t *testing.T) {
	store := NewMemoryStore()
	planner := NewPlanner(store, nil)

	profile := fullProfile()
	profile.Email = ""

	msgs, err := planner.PlanAfterCall(context.Background(), PlanInput{
		CallID:      "call-2",
		Profile:     profile,
		Salesperson: testSalesperson(),
		LinkURL:     "https://wheelhousemotors.example/inventory/view/xyz",
	})
	require.NoError(t, err)

	require.Len(t, msgs, 1)
	assert.Equal(t, ChannelSMS, msgs[0].Channel)

	all, err := store.ListByCall(context.Background(), "call-2")
	require.NoError(t, err)
	for _, m := range all {
		assert.NotEqual(t, ChannelEmail, m.Channel)
	}
}

func TestPlanAfterCallWithoutLinkSkipsSMS(t *testing.T) {
	store := NewMemoryStore()
	planner := NewPlanner(store, nil)

	msgs, err := planner.PlanAfterCall(context.Background(), PlanInput{
		CallID:      "call-3",
		Profile:     fullProfile(),
		Salesperson: testSalesperson(),
	})
	require.NoError(t, err)

	for _, m := range msgs {
		assert.NotEqual(t, KindInventoryLink, m.Kind)
	}
}

func TestPlanAfterCallIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	planner := NewPlanner(store, nil)

	in := PlanInput{
		CallID:      "call-4",
		Profile:     fullProfile(),
		Salesperson: testSalesperson(),
		LinkURL:     "https://wheelhousemotors.example/inventory/view/def",
	}

	first, err := planner.PlanAfterCall(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := planner.PlanAfterCall(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, second, "re-planning the same call should schedule nothing")

	all, err := store.ListByCall(context.Background(), "call-4")
	require.NoError(t, err)
	assert.Len(t, all, len(first))
}

func TestPlanAfterCallFinancingCampaign(t *testing.T) {
	store := NewMemoryStore()
	planner := NewPlanner(store, nil)

	msgs, err := planner.PlanAfterCall(context.Background(), PlanInput{
		CallID:      "call-5",
		Profile:     fullProfile(),
		Salesperson: testSalesperson(),
		Campaign:    CampaignFinancing,
	})
	require.NoError(t, err)

	var education int
	for _, m := range msgs {
		if m.Kind == KindEducation {
			education++
			assert.Equal(t, CampaignFinancing, m.Campaign)
		}
	}
	assert.Equal(t, 4, education)
}

func TestPlanAfterCallRequiresCallID(t *testing.T) {
	planner := NewPlanner(NewMemoryStore(), nil)
	_, err := planner.PlanAfterCall(context.Background(), PlanInput{})
	assert.Error(t, err)
}

func TestPlanAfterCallSurvivesStoreFailure(t *testing.T) {
	store := &flakyStore{inner: NewMemoryStore(), failKinds: map[Kind]bool{KindInventoryLink: true}}
	planner := NewPlanner(store, nil)

	msgs, err := planner.PlanAfterCall(context.Background(), PlanInput{
		CallID:      "call-6",
		Profile:     fullProfile(),
		Salesperson: testSalesperson(),
		LinkURL:     "https://wheelhousemotors.example/inventory/view/ghi",
	})
	require.Error(t, err)

	// Email rules still went through.
	assert.Len(t, msgs, 4)
	for _, m := range msgs {
		assert.Equal(t, ChannelEmail, m.Channel)
	}
}

type flakyStore struct {
	inner     Store
	failKinds map[Kind]bool
}

func (f *flakyStore) Create(ctx context.Context, m *Message) error {
	if f.failKinds[m.Kind] {
		return assert.AnError
	}
	return f.inner.Create(ctx, m)
}

func (f *flakyStore) ListDue(ctx context.Context, asOf time.Time, limit int) ([]Message, error) {
	return f.inner.ListDue(ctx, asOf, limit)
}

func (f *flakyStore) ListByCall(ctx context.Context, callID string) ([]Message, error) {
	return f.inner.ListByCall(ctx, callID)
}

func (f *flakyStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	return f.inner.MarkSent(ctx, id)
}

func (f *flakyStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return f.inner.MarkFailed(ctx, id, reason)
}
