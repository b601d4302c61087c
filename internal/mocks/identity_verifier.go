package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/VitaminP8/dsaboard/internal/auth"
)

// MockIdentityVerifier accepts the credentials registered with Allow.
type MockIdentityVerifier struct {
	mu         sync.Mutex
	identities map[string]*auth.Identity // credential -> identity
}

func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{identities: make(map[string]*auth.Identity)}
}

func (m *MockIdentityVerifier) Allow(credential string, identity auth.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[credential] = &identity
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, credential string) (*auth.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.identities[credential]
	if !ok {
		return nil, fmt.Errorf("%w: unknown credential", auth.ErrVerification)
	}
	c := *identity
	return &c, nil
}
