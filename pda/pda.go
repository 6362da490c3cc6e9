// Package pda derives the verification program's attestation-account
// addresses. A record account is a program-derived address over a
// constant seed tag, the attesting signer, and the verified program, so
// exactly one record exists per (signer, program) pair.
package pda

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solverify/attestor/interfaces"
)

// Network-wide constants of the verification program. Compile-time fixed.
var (
	// VerifyProgramID is the on-chain verification program.
	VerifyProgramID = solana.MustPublicKeyFromBase58("verifycLy8mB96wd9wqq3WDXQwM4oU6r42Th37Db9fC")

	// TrustedSigner is the default third-party attestor. Records seeded
	// with it are attestations made on the deployer's behalf.
	TrustedSigner = solana.MustPublicKeyFromBase58("9VWiUUhgNoRwTH5NVehYJEDwcotwYX3VgW4MChiHPAqU")
)

// seedTag is the constant first seed of every record address.
const seedTag = "otter_verify"

// Derive returns the record address and bump for the (signer, program)
// pair. The derivation is deterministic: repeated calls yield the same
// address and bump.
func Derive(signer, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(seedTag),
		signer.Bytes(),
		program.Bytes(),
	}
	addr, bump, err := solana.FindProgramAddress(seeds, VerifyProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %v", interfaces.ErrAddressDerivation, err)
	}
	return addr, bump, nil
}

// DeriveCandidates returns the two record addresses upload considers:
// candidate A seeded with the acting signer, candidate B seeded with the
// trusted attestor.
func DeriveCandidates(signer, program solana.PublicKey) (candidateA, candidateB solana.PublicKey, err error) {
	candidateA, _, err = Derive(signer, program)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	candidateB, _, err = Derive(TrustedSigner, program)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	return candidateA, candidateB, nil
}
