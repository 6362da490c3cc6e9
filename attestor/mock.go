package attestor

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"

	"github.com/solverify/attestor/interfaces"
)

// MockGateway mocks the interfaces.ChainGateway interface.
type MockGateway struct {
	mock.Mock
}

// AccountExists mocks the AccountExists method.
func (m *MockGateway) AccountExists(ctx context.Context, addr solana.PublicKey) (bool, error) {
	args := m.Called(ctx, addr)
	return args.Bool(0), args.Error(1)
}

// ScanAttestationAccounts mocks the ScanAttestationAccounts method.
func (m *MockGateway) ScanAttestationAccounts(ctx context.Context, program solana.PublicKey) ([]interfaces.RawAccount, error) {
	args := m.Called(ctx, program)
	return args.Get(0).([]interfaces.RawAccount), args.Error(1)
}

// Submit mocks the Submit method.
func (m *MockGateway) Submit(ctx context.Context, sub interfaces.Submission) (solana.Signature, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(solana.Signature), args.Error(1)
}

// URL mocks the URL method.
func (m *MockGateway) URL() string {
	args := m.Called()
	return args.String(0)
}

// MockOracle mocks the interfaces.DeploymentOracle interface.
type MockOracle struct {
	mock.Mock
}

// LastDeployedSlot mocks the LastDeployedSlot method.
func (m *MockOracle) LastDeployedSlot(ctx context.Context, program solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, program)
	return args.Get(0).(uint64), args.Error(1)
}

// MockConfirmer mocks the interfaces.Confirmer interface.
type MockConfirmer struct {
	mock.Mock
}

// Confirm mocks the Confirm method.
func (m *MockConfirmer) Confirm(prompt string) bool {
	args := m.Called(prompt)
	return args.Bool(0)
}
