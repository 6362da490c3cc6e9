// Package interfaces defines core interfaces and types for the
// attestation client, separating interface definitions from
// implementations.
//
// The package provides the contracts between the key components:
//
// # Network Interfaces
//
// ChainGateway: account existence checks, verification-program account
// scans, and signed instruction submission against a Solana RPC node.
//
// DeploymentOracle: resolves the last-deployed slot of a program, used
// to stamp attestations for staleness detection.
//
// Confirmer: yes/no confirmation before mutating operations, with an
// interactive and an always-yes implementation.
//
// # Domain Types
//
// - AttestationRecord: the on-chain build-provenance record
// - InputParams: the client-controlled record subset sent on upload
// - InstructionKind: Initialize, Update, or Close, with its 8-byte
//   on-chain discriminant
// - Endpoint / EndpointSelector: named RPC endpoint selection replacing
//   single-letter alias string matching
//
// # Errors
//
// The error taxonomy (ErrConfig, ErrUpstreamLookup, ErrAddressDerivation,
// ErrNoAttestationFound, ErrDecode, ErrSubmission) is exposed as sentinel
// errors wrapped with context, so callers can distinguish upstream
// failures from terminal usage errors with errors.Is.
package interfaces
