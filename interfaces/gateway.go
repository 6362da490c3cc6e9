package interfaces

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// ChainGateway is the network boundary of the client. Implementations
// talk to a Solana RPC node; tests substitute mocks.
type ChainGateway interface {
	// AccountExists reports whether an account is present on-chain.
	AccountExists(ctx context.Context, addr solana.PublicKey) (bool, error)

	// ScanAttestationAccounts returns every verification-program-owned
	// account whose embedded program id (at the fixed post-tag offset)
	// matches program, in the order the node returned them.
	ScanAttestationAccounts(ctx context.Context, program solana.PublicKey) ([]RawAccount, error)

	// Submit builds, signs, and sends the instruction, blocking until the
	// network confirms it. A single attempt, no retry.
	Submit(ctx context.Context, sub Submission) (solana.Signature, error)

	// URL returns the RPC endpoint the gateway is connected to.
	URL() string
}

// DeploymentOracle resolves the slot at which a program was last
// deployed, used to stamp attestations for staleness detection.
type DeploymentOracle interface {
	LastDeployedSlot(ctx context.Context, program solana.PublicKey) (uint64, error)
}

// Confirmer asks the user a yes/no question before a mutating operation.
// The interactive implementation blocks on stdin; the auto implementation
// answers yes, for unattended runs.
type Confirmer interface {
	Confirm(prompt string) bool
}
