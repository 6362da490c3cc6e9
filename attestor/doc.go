// Package attestor implements the command orchestration for the
// verification client.
//
// An upload considers two record addresses derived from the verified
// program: candidate A, seeded with the acting signer, and candidate B,
// seeded with the well-known trusted attestor. The decision policy is:
//
//   - candidate A exists: Update targeting A
//   - only candidate B exists: after confirmation, Initialize a new,
//     separate A record alongside the trusted one
//   - neither exists: Initialize targeting A
//
// Close derives candidate A from the default signer only and fails
// without submitting when no record exists. List scans every
// verification-program account matching the program id and silently
// drops accounts whose data does not decode as a record, since
// unrelated layouts are expected in a broad scan.
//
// All operations are synchronous and single-attempt: any network,
// signing, or lookup error aborts the invocation.
package attestor
