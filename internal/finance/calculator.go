package finance

import (
	"errors"
	"math"
	"strings"
)

// CreditTier buckets a caller's self-reported credit standing.
type CreditTier string

const (
	TierExcellent CreditTier = "excellent"
	TierGood      CreditTier = "good"
	TierFair      CreditTier = "fair"
	TierPoor      CreditTier = "poor"
)

// Annual percentage rates by credit tier.
var tierRates = map[CreditTier]float64{
	TierExcellent: 0.0299,
	TierGood:      0.0449,
	TierFair:      0.0649,
	TierPoor:      0.0899,
}

// ErrInvalidLoan is returned when the requested loan cannot be amortized.
var ErrInvalidLoan = errors.New("finance: loan amount and term must be positive")

// Estimate is a monthly payment quote.
type Estimate struct {
	LoanAmount     float64 `json:"loan_amount"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TermMonths     int     `json:"term_months"`
	AnnualRate     float64 `json:"annual_rate"`
	TotalInterest  float64 `json:"total_interest"`
	CreditTier     string  `json:"credit_tier"`
}

// TierFromString maps free-text credit descriptions onto a tier, defaulting
// to "good" for anything unrecognized.
func TierFromString(s string) CreditTier {
	switch CreditTier(strings.ToLower(strings.TrimSpace(s))) {
	case TierExcellent:
		return TierExcellent
	case TierFair:
		return TierFair
	case TierPoor:
		return TierPoor
	default:
		return TierGood
	}
}

// TierFromScore buckets a numeric credit score.
func TierFromScore(score int) CreditTier {
	switch {
	case score >= 750:
		return TierExcellent
	case score >= 650:
		return TierGood
	case score >= 550:
		return TierFair
	default:
		return TierPoor
	}
}

// ApprovalLikelihood gives the coarse odds used in the caller-facing reply.
func ApprovalLikelihood(score int) string {
	switch {
	case score > 650:
		return "high"
	case score > 550:
		return "medium"
	default:
		return "low"
	}
}

// MonthlyPayment amortizes a vehicle loan. Down payment and trade-in reduce
// the principal before interest applies.
func MonthlyPayment(vehiclePrice, downPayment, tradeInValue float64, termMonths int, tier CreditTier) (Estimate, error) {
	loanAmount := vehiclePrice - downPayment - tradeInValue
	if loanAmount <= 0 || termMonths <= 0 {
		return Estimate{}, ErrInvalidLoan
	}

	rate, ok := tierRates[tier]
	if !ok {
		rate = tierRates[TierGood]
		tier = TierGood
	}
	monthlyRate := rate / 12

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := loanAmount * (monthlyRate * factor) / (factor - 1)
	totalInterest := payment*float64(termMonths) - loanAmount

	return Estimate{
		LoanAmount:     loanAmount,
		MonthlyPayment: math.Round(payment*100) / 100,
		TermMonths:     termMonths,
		AnnualRate:     rate,
		TotalInterest:  math.Round(totalInterest*100) / 100,
		CreditTier:     string(tier),
	}, nil
}
