package agents

// Agent identifies a conversational persona a call can be assigned to.
type Agent string

const (
	LeadQualifier        Agent = "leadQualifier"
	SalesAgent           Agent = "salesAgent"
	TestDriveCoordinator Agent = "testDriveCoordinator"
	FinanceSpecialist    Agent = "financeSpecialist"
	Manager              Agent = "manager"
	FollowUpAgent        Agent = "followUpAgent"
	EndCall              Agent = "endCall"
	HumanTransfer        Agent = "humanTransfer"
)

// All lists every known agent variant.
func All() []Agent {
	return []Agent{
		LeadQualifier,
		SalesAgent,
		TestDriveCoordinator,
		FinanceSpecialist,
		Manager,
		FollowUpAgent,
		EndCall,
		HumanTransfer,
	}
}

// IsKnown reports whether a is one of the fixed agent variants.
func (a Agent) IsKnown() bool {
	switch a {
	case LeadQualifier, SalesAgent, TestDriveCoordinator, FinanceSpecialist,
		Manager, FollowUpAgent, EndCall, HumanTransfer:
		return true
	}
	return false
}

// Terminal reports whether the agent ends the conversation rather than
// continuing it.
func (a Agent) Terminal() bool {
	return a == EndCall || a == HumanTransfer
}

// Profile describes one agent in the static catalog.
type Profile struct {
	Agent        Agent
	Name         string
	Role         string
	TransferLine string // spoken to the caller when handing off to this agent
}

// Directory is the immutable agent catalog, built once at startup and passed
// explicitly to callers. It is never mutated after construction.
type Directory struct {
	profiles map[Agent]Profile
}

// NewDirectory builds the fixed agent catalog.
func NewDirectory() *Directory {
	profiles := map[Agent]Profile{
		LeadQualifier: {
			Agent:        LeadQualifier,
			Name:         "Lead Qualifier",
			Role:         "Qualify potential customers",
			TransferLine: "Let me gather a few details so I can point you to the right person.",
		},
		SalesAgent: {
			Agent:        SalesAgent,
			Name:         "Sales Agent",
			Role:         "Handle vehicle sales and consultations",
			TransferLine: "I'll transfer you to our sales specialist who can help you find the perfect vehicle.",
		},
		TestDriveCoordinator: {
			Agent:        TestDriveCoordinator,
			Name:         "Test Drive Coordinator",
			Role:         "Schedule and coordinate test drives",
			TransferLine: "Let me connect you with our test drive coordinator to get you behind the wheel.",
		},
		FinanceSpecialist: {
			Agent:        FinanceSpecialist,
			Name:         "Finance Specialist",
			Role:         "Handle financing and loan options",
			TransferLine: "I'll transfer you to our finance expert who can discuss payment options with you.",
		},
		Manager: {
			Agent:        Manager,
			Name:         "Sales Manager",
			Role:         "Handle escalated situations",
			TransferLine: "Let me bring in our sales manager to make sure you're taken care of.",
		},
		FollowUpAgent: {
			Agent:        FollowUpAgent,
			Name:         "Follow-up Agent",
			Role:         "Maintain customer relationships",
			TransferLine: "I'll have our follow-up team stay in touch with some options for you.",
		},
		EndCall: {
			Agent:        EndCall,
			Name:         "End Call",
			Role:         "Wrap up the conversation",
			TransferLine: "Thank you for calling! We appreciate your business and look forward to serving you.",
		},
		HumanTransfer: {
			Agent:        HumanTransfer,
			Name:         "Team Member",
			Role:         "Live human handoff",
			TransferLine: "I'll connect you with one of our team members right away. Please hold for just a moment.",
		},
	}
	return &Directory{profiles: profiles}
}

// Profile returns the catalog entry for the agent. Unknown agents resolve to
// the sales agent profile so a caller-facing utterance always exists.
func (d *Directory) Profile(a Agent) Profile {
	if p, ok := d.profiles[a]; ok {
		return p
	}
	return d.profiles[SalesAgent]
}
