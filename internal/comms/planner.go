package comms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// DefaultSummaryDelay is how long after the call the summary email goes out.
const DefaultSummaryDelay = 20 * time.Minute

// PlanInput carries everything the planner needs from the end of a call.
type PlanInput struct {
	CallID      string
	Profile     *crm.CustomerProfile
	Salesperson agents.Salesperson
	LinkURL     string
	Vehicles    []inventory.Vehicle
	// Campaign names the education series to schedule. Empty means buyer_tips.
	Campaign string
}

// Planner turns a finished call into scheduled communications.
//
// Three rules apply: an immediate SMS when there is a shareable link and a
// phone number, a summary email after a short delay when the caller gave an
// email, and the education drip. Each rule is independently idempotent via
// dedupe keys, so re-planning the same call schedules nothing new.
type Planner struct {
	store        Store
	catalog      CampaignCatalog
	summaryDelay time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

func NewPlanner(store Store, logger *logging.Logger) *Planner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Planner{
		store:        store,
		catalog:      DefaultCatalog(),
		summaryDelay: DefaultSummaryDelay,
		logger:       logger,
		now:          time.Now,
	}
}

// WithSummaryDelay overrides the summary email delay.
func (p *Planner) WithSummaryDelay(d time.Duration) *Planner {
	if d > 0 {
		p.summaryDelay = d
	}
	return p
}

// PlanAfterCall schedules the post-call communications and returns the
// messages newly created. A failure in one rule does not stop the others;
// all failures come back joined.
func (p *Planner) PlanAfterCall(ctx context.Context, in PlanInput) ([]Message, error) {
	if in.CallID == "" {
		return nil, fmt.Errorf("comms: plan: call id is required")
	}

	now := p.now().UTC()
	var created []Message
	var errs []error

	schedule := func(m Message) {
		err := p.store.Create(ctx, &m)
		switch {
		case errors.Is(err, ErrDuplicate):
			// Already planned on an earlier invocation for this call.
		case err != nil:
			errs = append(errs, fmt.Errorf("comms: schedule %s: %w", m.Kind, err))
		default:
			created = append(created, m)
		}
	}

	customerID, phone, email := contactFields(in.Profile)

	// Immediate SMS with the inventory link.
	if in.LinkURL != "" && phone != "" {
		schedule(Message{
			CallID:      in.CallID,
			CustomerID:  customerID,
			Channel:     ChannelSMS,
			Kind:        KindInventoryLink,
			Recipient:   phone,
			Subject:     "Your Vehicle Matches",
			Body:        SMSLinkBody(profileName(in.Profile), in.LinkURL, in.Salesperson),
			DedupeKey:   linkDedupeKey(in.CallID),
			Status:      StatusPending,
			ScheduledAt: now,
		})
	}

	// Summary email, only when the caller gave an address.
	if email != "" {
		schedule(Message{
			CallID:      in.CallID,
			CustomerID:  customerID,
			Channel:     ChannelEmail,
			Kind:        KindClientSummary,
			Recipient:   email,
			Subject:     SummarySubject(in.Profile),
			Body:        SummaryBody(in.Profile, in.Salesperson, in.LinkURL, in.Vehicles),
			DedupeKey:   summaryDedupeKey(in.CallID),
			Status:      StatusPending,
			ScheduledAt: now.Add(p.summaryDelay),
		})

		campaignName := in.Campaign
		if campaignName == "" {
			campaignName = CampaignBuyerTips
		}
		campaign, ok := p.catalog[campaignName]
		if !ok {
			p.logger.Warn("comms: unknown campaign, skipping drip", "campaign", campaignName, "call_id", in.CallID)
		}
		for _, step := range campaign.Steps {
			schedule(Message{
				CallID:      in.CallID,
				CustomerID:  customerID,
				Channel:     ChannelEmail,
				Kind:        KindEducation,
				Recipient:   email,
				Subject:     step.Subject,
				Body:        step.Body,
				Campaign:    campaign.Name,
				Sequence:    step.Sequence,
				DedupeKey:   educationDedupeKey(in.CallID, campaign.Name, step.Sequence),
				Status:      StatusPending,
				ScheduledAt: now.Add(time.Duration(step.DelayDays) * 24 * time.Hour),
			})
		}
	} else {
		p.logger.Info("comms: no email on profile, skipping email scheduling", "call_id", in.CallID)
	}

	sort.Slice(created, func(i, j int) bool { return created[i].ScheduledAt.Before(created[j].ScheduledAt) })
	if len(created) > 0 {
		p.logger.Info("comms: scheduled post-call communications",
			"call_id", in.CallID, "count", len(created))
	}
	return created, errors.Join(errs...)
}

func contactFields(p *crm.CustomerProfile) (id, phone, email string) {
	if p == nil {
		return "", "", ""
	}
	return p.ID, p.PhoneNumber, p.Email
}

func profileName(p *crm.CustomerProfile) string {
	if p == nil {
		return ""
	}
	return p.Name
}
