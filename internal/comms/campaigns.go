package comms

// CampaignStep is one timed email in a drip series.
type CampaignStep struct {
	Sequence  int
	DelayDays int
	Subject   string
	Body      string
}

// Campaign is a named drip series. Steps are ordered by sequence and are
// scheduled relative to the end of the call.
type Campaign struct {
	Name  string
	Steps []CampaignStep
}

const (
	CampaignBuyerTips = "buyer_tips"
	CampaignFinancing = "financing"
)

// CampaignCatalog resolves campaign names to their step definitions.
type CampaignCatalog map[string]Campaign

// DefaultCatalog returns the built-in education series.
func DefaultCatalog() CampaignCatalog {
	return CampaignCatalog{
		CampaignBuyerTips: {
			Name: CampaignBuyerTips,
			Steps: []CampaignStep{
				{
					Sequence:  1,
					DelayDays: 1,
					Subject:   "Car Buying Tip #1: Do Your Research First",
					Body: "Smart car buying starts with research. Before visiting dealerships, check market prices " +
						"from multiple sources, look up reliability ratings, search for known issues with specific " +
						"years and models, and compare real-world fuel economy. The more you know, the better deal you'll get.",
				},
				{
					Sequence:  2,
					DelayDays: 3,
					Subject:   "Car Buying Tip #2: When to Buy for Best Deals",
					Body: "Timing can save you thousands. The best windows are end of month and end of quarter, when " +
						"sales teams are pushing to hit goals, and October through December for year-end clearances. " +
						"Weekday visits leave more time to negotiate. A patient buyer is a smart buyer.",
				},
				{
					Sequence:  3,
					DelayDays: 5,
					Subject:   "Car Buying Tip #3: Master the Test Drive",
					Body: "A proper test drive reveals more than a quick spin around the block. Drive in varied " +
						"conditions, test every feature, listen for unusual noises, check visibility, and try parking. " +
						"Test drive your top two or three choices back-to-back for the easiest comparison.",
				},
			},
		},
		CampaignFinancing: {
			Name: CampaignFinancing,
			Steps: []CampaignStep{
				{
					Sequence:  1,
					DelayDays: 2,
					Subject:   "Financing Tip #1: Your Credit Score Matters",
					Body: "Your credit score directly affects your interest rate and monthly payment. Pull your score " +
						"before you shop so you know which rates to expect, and dispute any errors early.",
				},
				{
					Sequence:  2,
					DelayDays: 4,
					Subject:   "Financing Tip #2: Get Pre-Approved",
					Body: "A pre-approval from your bank or credit union gives you a baseline rate to compare against " +
						"dealer financing, and it turns you into a cash buyer at the negotiating table.",
				},
				{
					Sequence:  3,
					DelayDays: 7,
					Subject:   "Financing Tip #3: Look Beyond the Monthly Payment",
					Body: "A longer term lowers the monthly payment but raises the total cost. Compare total interest " +
						"across terms, not just the monthly number, and watch for add-ons folded into the loan.",
				},
				{
					Sequence:  4,
					DelayDays: 14,
					Subject:   "Financing Tip #4: Down Payments and Trade-Ins",
					Body: "Every dollar of down payment or trade-in value reduces the amount you finance. Get your " +
						"trade-in appraised separately so its value isn't blended into the deal.",
				},
			},
		},
	}
}
