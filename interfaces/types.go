// Package interfaces defines the core interfaces and types for the
// attestation client. It provides the contract between components without
// implementation details.
package interfaces

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// AttestationRecord is the on-chain record asserting build provenance for
// a deployed program. It is persisted by the verification program; the
// client only reads it or proposes mutations to it.
type AttestationRecord struct {
	Address      solana.PublicKey
	Signer       solana.PublicKey
	Version      string
	GitURL       string
	Commit       string
	Args         []string
	DeployedSlot uint64
	Bump         uint8
}

// String renders the record in the block format printed by the list
// command.
func (r AttestationRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program Id: %s\n", r.Address)
	fmt.Fprintf(&b, "Signer: %s\n", r.Signer)
	fmt.Fprintf(&b, "Git Url: %s\n", r.GitURL)
	fmt.Fprintf(&b, "Commit: %s\n", r.Commit)
	fmt.Fprintf(&b, "Deployed Slot: %d\n", r.DeployedSlot)
	fmt.Fprintf(&b, "Args: %v\n", r.Args)
	fmt.Fprintf(&b, "Version: %s\n", r.Version)
	return b.String()
}

// InputParams is the client-controlled subset of the attestation record
// sent with Initialize and Update instructions. Constructed fresh per
// invocation, never stored.
type InputParams struct {
	Version      string
	GitURL       string
	Commit       string
	Args         []string
	DeployedSlot uint64
}

// InstructionKind selects the on-chain instruction variant to issue.
type InstructionKind int

const (
	Initialize InstructionKind = iota
	Update
	Close
)

// Discriminant returns the fixed 8-byte prefix identifying the
// instruction variant to the on-chain program.
func (k InstructionKind) Discriminant() []byte {
	switch k {
	case Initialize:
		return []byte{175, 175, 109, 31, 13, 152, 155, 237}
	case Update:
		return []byte{219, 200, 88, 176, 158, 63, 253, 127}
	case Close:
		return []byte{98, 165, 201, 177, 108, 65, 206, 96}
	}
	return nil
}

// String returns the instruction name.
func (k InstructionKind) String() string {
	switch k {
	case Initialize:
		return "initialize"
	case Update:
		return "update"
	case Close:
		return "close"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// RawAccount is an on-chain account as returned by a program-account
// scan: its address and undecoded data bytes.
type RawAccount struct {
	Address solana.PublicKey
	Data    []byte
}

// Submission describes one instruction to build, sign, and send. Params
// are ignored for Close, which sends the discriminant alone.
type Submission struct {
	Kind    InstructionKind
	Params  InputParams
	Record  solana.PublicKey
	Program solana.PublicKey
	Signer  solana.PrivateKey
}
