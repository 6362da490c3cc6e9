// Package codec serializes instruction payloads and deserializes on-chain
// attestation records in the verification program's fixed Borsh layout.
package codec

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/solverify/attestor/interfaces"
)

// AccountTagLen is the length of the account-type tag prefixing every
// verification-program account. The tag is assigned by the on-chain
// program and is opaque to this client; decoding skips it.
const AccountTagLen = 8

// EncodeInstruction produces the wire payload for one instruction: the
// 8-byte discriminant for kind followed by the Borsh serialization of
// params. Close sends the discriminant alone.
func EncodeInstruction(kind interfaces.InstructionKind, params interfaces.InputParams) ([]byte, error) {
	disc := kind.Discriminant()
	if disc == nil {
		return nil, fmt.Errorf("unknown instruction kind %d", int(kind))
	}
	if kind == interfaces.Close {
		return disc, nil
	}

	buf := new(bytes.Buffer)
	buf.Write(disc)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(params); err != nil {
		return nil, fmt.Errorf("unable to serialize params: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRecord deserializes raw account bytes into an attestation record,
// skipping the leading account-type tag. It returns an error wrapping
// interfaces.ErrDecode when the bytes are too short, truncate a field, or
// leave trailing garbage. Unrelated account layouts encountered during a
// broad scan are expected to fail here; callers filter those out.
func DecodeRecord(data []byte) (interfaces.AttestationRecord, error) {
	var rec interfaces.AttestationRecord
	if len(data) < AccountTagLen {
		return rec, fmt.Errorf("%w: account data too short (%d bytes)", interfaces.ErrDecode, len(data))
	}

	dec := bin.NewBorshDecoder(data[AccountTagLen:])
	if err := dec.Decode(&rec); err != nil {
		return interfaces.AttestationRecord{}, fmt.Errorf("%w: %v", interfaces.ErrDecode, err)
	}
	if dec.Remaining() != 0 {
		return interfaces.AttestationRecord{}, fmt.Errorf("%w: %d trailing bytes", interfaces.ErrDecode, dec.Remaining())
	}
	return rec, nil
}

// EncodeRecord serializes a full attestation record in the on-chain
// account layout, prefixed by a zeroed account-type tag. The real tag is
// assigned by the on-chain program; since DecodeRecord skips it without
// inspection, the zero tag round-trips. Used by tooling and tests that
// synthesize account data.
func EncodeRecord(rec interfaces.AttestationRecord) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(make([]byte, AccountTagLen))
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("unable to serialize record: %w", err)
	}
	return buf.Bytes(), nil
}
