package entities

// CheckoutStatus mirrors the provider-side session lifecycle. Transitions
// happen exclusively on the provider side; local code only observes them.
type CheckoutStatus string

const (
	CheckoutStatusOpen     CheckoutStatus = "open"
	CheckoutStatusComplete CheckoutStatus = "complete"
	CheckoutStatusExpired  CheckoutStatus = "expired"
)

// CheckoutSession is the provider's record of a payment attempt, retrieved
// by id at verification time.
type CheckoutSession struct {
	ProviderSessionID string
	Status            CheckoutStatus
	CourseID          string
	UserID            string
	AmountTotal       int64
	Currency          string
}
