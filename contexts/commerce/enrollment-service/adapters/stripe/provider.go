package stripeadapter

import (
	"context"
	"fmt"

	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	"coursebay/contexts/commerce/enrollment-service/ports"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const (
	metadataCourseID = "course_id"
	metadataUserID   = "user_id"
)

// Provider adapts Stripe Checkout to the PaymentProvider port. The client is
// constructed once at bootstrap with an explicit key; no package-global state.
type Provider struct {
	client     *client.API
	successURL string
	cancelURL  string
}

func NewProvider(apiKey string, successURL string, cancelURL string) *Provider {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &Provider{
		client:     sc,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (p *Provider) CreateSession(ctx context.Context, input ports.CreateCheckoutInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(input.Currency),
					UnitAmount: stripe.Int64(input.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(input.CourseTitle),
					},
				},
			},
		},
	}
	if input.UserEmail != "" {
		params.CustomerEmail = stripe.String(input.UserEmail)
	}
	// Attribution travels with the session so verification can resolve the
	// purchase without a local pending record.
	params.AddMetadata(metadataCourseID, input.CourseID)
	params.AddMetadata(metadataUserID, input.UserID)
	params.Context = ctx

	session, err := p.client.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.ID, nil
}

func (p *Provider) RetrieveSession(ctx context.Context, providerSessionID string) (entities.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := p.client.CheckoutSessions.Get(providerSessionID, params)
	if err != nil {
		return entities.CheckoutSession{}, fmt.Errorf("retrieve checkout session: %w", err)
	}

	return entities.CheckoutSession{
		ProviderSessionID: session.ID,
		Status:            entities.CheckoutStatus(session.Status),
		CourseID:          session.Metadata[metadataCourseID],
		UserID:            session.Metadata[metadataUserID],
		AmountTotal:       session.AmountTotal,
		Currency:          string(session.Currency),
	}, nil
}
