package memory

import (
	"context"
	"fmt"
	"sync"

	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

// FakeProvider is a scripted payment provider for tests and local runs. It
// records call counts so tests can assert that malformed session ids never
// reach the provider.
type FakeProvider struct {
	mu            sync.Mutex
	sessions      map[string]entities.CheckoutSession
	retrieveErr   error
	sequence      int
	RetrieveCalls int
	CreateCalls   int
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{sessions: make(map[string]entities.CheckoutSession)}
}

// SeedSession registers a provider-side session retrievable by its id.
func (p *FakeProvider) SeedSession(session entities.CheckoutSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[session.ProviderSessionID] = session
}

// FailRetrieval makes every RetrieveSession call return err.
func (p *FakeProvider) FailRetrieval(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retrieveErr = err
}

func (p *FakeProvider) CreateSession(_ context.Context, input ports.CreateCheckoutInput) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CreateCalls++
	p.sequence++
	sessionID := fmt.Sprintf("cs_test_%d", p.sequence)
	p.sessions[sessionID] = entities.CheckoutSession{
		ProviderSessionID: sessionID,
		Status:            entities.CheckoutStatusOpen,
		CourseID:          input.CourseID,
		UserID:            input.UserID,
		AmountTotal:       input.AmountCents,
		Currency:          input.Currency,
	}
	return sessionID, nil
}

func (p *FakeProvider) RetrieveSession(_ context.Context, providerSessionID string) (entities.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RetrieveCalls++
	if p.retrieveErr != nil {
		return entities.CheckoutSession{}, p.retrieveErr
	}
	session, ok := p.sessions[providerSessionID]
	if !ok {
		return entities.CheckoutSession{}, fmt.Errorf("no such session: %s", providerSessionID)
	}
	return session, nil
}

// CompleteSession flips a seeded session to complete, simulating a provider-
// side payment success.
func (p *FakeProvider) CompleteSession(providerSessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session := p.sessions[providerSessionID]
	session.Status = entities.CheckoutStatusComplete
	p.sessions[providerSessionID] = session
}
