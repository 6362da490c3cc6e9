package codec

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solverify/attestor/interfaces"
)

func testRecord() interfaces.AttestationRecord {
	return interfaces.AttestationRecord{
		Address:      solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111"),
		Signer:       solana.MustPublicKeyFromBase58("9VWiUUhgNoRwTH5NVehYJEDwcotwYX3VgW4MChiHPAqU"),
		Version:      "0.1.0",
		GitURL:       "https://github.com/example/program",
		Commit:       "3b1a9f0",
		Args:         []string{"--libname", "program"},
		DeployedSlot: 271828,
		Bump:         254,
	}
}

func TestRecordRoundTrip(t *testing.T) {
	rec := testRecord()

	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestInstructionPayloadMatchesRecordLayout(t *testing.T) {
	// A record account is tag + address + signer + params layout + bump,
	// with the params portion identical to the instruction payload after
	// its discriminant. Splicing an encoded payload into a synthesized
	// account must decode back to the same field values.
	rec := testRecord()
	params := interfaces.InputParams{
		Version:      rec.Version,
		GitURL:       rec.GitURL,
		Commit:       rec.Commit,
		Args:         rec.Args,
		DeployedSlot: rec.DeployedSlot,
	}

	payload, err := EncodeInstruction(interfaces.Initialize, params)
	require.NoError(t, err)
	require.Equal(t, interfaces.Initialize.Discriminant(), payload[:8])

	var account []byte
	account = append(account, make([]byte, AccountTagLen)...)
	account = append(account, rec.Address.Bytes()...)
	account = append(account, rec.Signer.Bytes()...)
	account = append(account, payload[8:]...)
	account = append(account, rec.Bump)

	decoded, err := DecodeRecord(account)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestEncodeInstructionUpdateDiscriminant(t *testing.T) {
	payload, err := EncodeInstruction(interfaces.Update, interfaces.InputParams{Args: []string{"--bpf"}})
	require.NoError(t, err)
	assert.Equal(t, []byte{219, 200, 88, 176, 158, 63, 253, 127}, payload[:8])
	assert.Greater(t, len(payload), 8)
}

func TestEncodeInstructionCloseIsDiscriminantOnly(t *testing.T) {
	payload, err := EncodeInstruction(interfaces.Close, interfaces.InputParams{})
	require.NoError(t, err)
	assert.Equal(t, []byte{98, 165, 201, 177, 108, 65, 206, 96}, payload)
}

func TestDecodeRecordShortBuffer(t *testing.T) {
	full, err := EncodeRecord(testRecord())
	require.NoError(t, err)

	// Every truncation must fail cleanly, never panic.
	for cut := 0; cut < len(full); cut++ {
		_, err := DecodeRecord(full[:cut])
		assert.ErrorIs(t, err, interfaces.ErrDecode, "truncated at %d bytes", cut)
	}
}

func TestDecodeRecordTrailingBytes(t *testing.T) {
	full, err := EncodeRecord(testRecord())
	require.NoError(t, err)

	_, err = DecodeRecord(append(full, 0xde, 0xad))
	assert.ErrorIs(t, err, interfaces.ErrDecode)
}

func TestDecodeRecordUnrelatedLayout(t *testing.T) {
	_, err := DecodeRecord([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	assert.ErrorIs(t, err, interfaces.ErrDecode)
}
