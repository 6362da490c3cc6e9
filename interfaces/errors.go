package interfaces

import "errors"

// Error kinds for the client. Every failure aborts the current invocation;
// callers use errors.Is to distinguish upstream failures from usage errors.
var (
	// ErrConfig indicates a missing or unreadable local config file or
	// keypair file.
	ErrConfig = errors.New("config unavailable")

	// ErrUpstreamLookup indicates the deployed-slot lookup was unreachable
	// or errored.
	ErrUpstreamLookup = errors.New("deployed slot lookup failed")

	// ErrAddressDerivation indicates a malformed program id string or a
	// failed program-derived-address search.
	ErrAddressDerivation = errors.New("address derivation failed")

	// ErrNoAttestationFound is returned by close when the resolved signer
	// owns no record for the program.
	ErrNoAttestationFound = errors.New("no attestation record found")

	// ErrDecode indicates malformed record bytes. Swallowed while scanning
	// many accounts, surfaced on single-record use.
	ErrDecode = errors.New("malformed attestation record")

	// ErrSubmission indicates the network rejected or failed to confirm
	// the transaction. Submissions are single-attempt.
	ErrSubmission = errors.New("transaction submission failed")
)
