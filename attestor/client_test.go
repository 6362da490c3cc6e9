package attestor

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solverify/attestor/codec"
	"github.com/solverify/attestor/interfaces"
	"github.com/solverify/attestor/pda"
)

var testProgram = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")

func testClient(t *testing.T) (*Client, *MockGateway, *MockOracle, *MockConfirmer) {
	t.Helper()

	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	gw := new(MockGateway)
	oracle := new(MockOracle)
	confirmer := new(MockConfirmer)

	return &Client{
		Gateway:   gw,
		Oracle:    oracle,
		Confirmer: confirmer,
		Signer:    signer,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, gw, oracle, confirmer
}

func candidates(t *testing.T, c *Client) (solana.PublicKey, solana.PublicKey) {
	t.Helper()
	candidateA, candidateB, err := pda.DeriveCandidates(c.Signer.PublicKey(), testProgram)
	require.NoError(t, err)
	return candidateA, candidateB
}

func uploadRequest() UploadRequest {
	return UploadRequest{
		GitURL:  "https://github.com/example/program",
		Commit:  "3b1a9f0",
		Args:    []string{"--libname", "program"},
		Program: testProgram,
		Version: "0.1.0",
	}
}

func TestUploadUpdatesExistingRecord(t *testing.T) {
	client, gw, oracle, confirmer := testClient(t)
	candidateA, _ := candidates(t, client)

	confirmer.On("Confirm", mock.Anything).Return(true)
	oracle.On("LastDeployedSlot", mock.Anything, testProgram).Return(uint64(271828), nil)
	gw.On("AccountExists", mock.Anything, candidateA).Return(true, nil)
	gw.On("Submit", mock.Anything, mock.MatchedBy(func(sub interfaces.Submission) bool {
		return sub.Kind == interfaces.Update && sub.Record.Equals(candidateA) && sub.Params.DeployedSlot == 271828
	})).Return(solana.Signature{1}, nil)

	result, err := client.Upload(context.Background(), uploadRequest())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, interfaces.Update, result.Kind)
	assert.Equal(t, candidateA, result.Record)
	gw.AssertExpectations(t)
}

func TestUploadInitializesWhenNeitherCandidateExists(t *testing.T) {
	client, gw, oracle, confirmer := testClient(t)
	candidateA, candidateB := candidates(t, client)

	confirmer.On("Confirm", mock.Anything).Return(true)
	oracle.On("LastDeployedSlot", mock.Anything, testProgram).Return(uint64(5), nil)
	gw.On("AccountExists", mock.Anything, candidateA).Return(false, nil)
	gw.On("AccountExists", mock.Anything, candidateB).Return(false, nil)
	gw.On("Submit", mock.Anything, mock.MatchedBy(func(sub interfaces.Submission) bool {
		return sub.Kind == interfaces.Initialize && sub.Record.Equals(candidateA)
	})).Return(solana.Signature{2}, nil)

	result, err := client.Upload(context.Background(), uploadRequest())
	require.NoError(t, err)
	assert.Equal(t, interfaces.Initialize, result.Kind)
	gw.AssertExpectations(t)
}

func TestUploadInitializesAlongsideTrustedRecord(t *testing.T) {
	// Candidate B owned by the trusted attestor does not block a new,
	// separate candidate-A record; both may coexist.
	client, gw, oracle, _ := testClient(t)
	candidateA, candidateB := candidates(t, client)
	client.Confirmer = AutoConfirmer{}

	oracle.On("LastDeployedSlot", mock.Anything, testProgram).Return(uint64(5), nil)
	gw.On("AccountExists", mock.Anything, candidateA).Return(false, nil)
	gw.On("AccountExists", mock.Anything, candidateB).Return(true, nil)
	gw.On("Submit", mock.Anything, mock.MatchedBy(func(sub interfaces.Submission) bool {
		return sub.Kind == interfaces.Initialize && sub.Record.Equals(candidateA)
	})).Return(solana.Signature{3}, nil)

	result, err := client.Upload(context.Background(), uploadRequest())
	require.NoError(t, err)
	assert.Equal(t, interfaces.Initialize, result.Kind)
	gw.AssertExpectations(t)
}

func TestUploadDeclinedTrustedRecordPromptSkips(t *testing.T) {
	client, gw, oracle, confirmer := testClient(t)
	candidateA, candidateB := candidates(t, client)

	confirmer.On("Confirm", uploadPrompt).Return(true)
	confirmer.On("Confirm", newRecordPrompt).Return(false)
	oracle.On("LastDeployedSlot", mock.Anything, testProgram).Return(uint64(5), nil)
	gw.On("AccountExists", mock.Anything, candidateA).Return(false, nil)
	gw.On("AccountExists", mock.Anything, candidateB).Return(true, nil)

	result, err := client.Upload(context.Background(), uploadRequest())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	gw.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestUploadDeclinedOuterPromptIsNoop(t *testing.T) {
	client, gw, oracle, confirmer := testClient(t)

	confirmer.On("Confirm", uploadPrompt).Return(false)

	result, err := client.Upload(context.Background(), uploadRequest())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	oracle.AssertNotCalled(t, "LastDeployedSlot", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestUploadOracleFailureAborts(t *testing.T) {
	client, gw, oracle, confirmer := testClient(t)

	confirmer.On("Confirm", mock.Anything).Return(true)
	oracle.On("LastDeployedSlot", mock.Anything, testProgram).Return(uint64(0), interfaces.ErrUpstreamLookup)

	_, err := client.Upload(context.Background(), uploadRequest())
	assert.ErrorIs(t, err, interfaces.ErrUpstreamLookup)
	gw.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestCloseRecord(t *testing.T) {
	client, gw, _, _ := testClient(t)
	candidateA, _ := candidates(t, client)

	gw.On("AccountExists", mock.Anything, candidateA).Return(true, nil)
	gw.On("Submit", mock.Anything, mock.MatchedBy(func(sub interfaces.Submission) bool {
		return sub.Kind == interfaces.Close && sub.Record.Equals(candidateA) && sub.Program.Equals(testProgram)
	})).Return(solana.Signature{4}, nil)

	sig, err := client.CloseRecord(context.Background(), testProgram)
	require.NoError(t, err)
	assert.Equal(t, solana.Signature{4}, sig)
	gw.AssertExpectations(t)
}

func TestCloseRecordWithoutRecordFails(t *testing.T) {
	client, gw, _, _ := testClient(t)
	candidateA, _ := candidates(t, client)

	gw.On("AccountExists", mock.Anything, candidateA).Return(false, nil)

	_, err := client.CloseRecord(context.Background(), testProgram)
	require.ErrorIs(t, err, interfaces.ErrNoAttestationFound)
	assert.Contains(t, err.Error(), client.Signer.PublicKey().String())
	assert.Contains(t, err.Error(), testProgram.String())
	gw.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestListFiltersUndecodableAccounts(t *testing.T) {
	client, gw, _, _ := testClient(t)

	rec1 := interfaces.AttestationRecord{
		Address:      testProgram,
		Signer:       client.Signer.PublicKey(),
		Version:      "0.1.0",
		GitURL:       "https://github.com/example/program",
		Commit:       "3b1a9f0",
		Args:         []string{"--libname", "program"},
		DeployedSlot: 100,
		Bump:         255,
	}
	rec2 := rec1
	rec2.Commit = "77aa0e1"
	rec2.DeployedSlot = 205

	data1, err := codec.EncodeRecord(rec1)
	require.NoError(t, err)
	data2, err := codec.EncodeRecord(rec2)
	require.NoError(t, err)

	addr1 := solana.NewWallet().PublicKey()
	addr2 := solana.NewWallet().PublicKey()
	gw.On("ScanAttestationAccounts", mock.Anything, testProgram).Return([]interfaces.RawAccount{
		{Address: addr1, Data: data1},
		{Address: solana.NewWallet().PublicKey(), Data: []byte{1, 2, 3}},
		{Address: addr2, Data: data2},
		{Address: solana.NewWallet().PublicKey(), Data: data1[:20]},
	}, nil)

	records, err := client.List(context.Background(), testProgram)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, addr1, records[0].Account)
	assert.Equal(t, rec1, records[0].Record)
	assert.Equal(t, addr2, records[1].Account)
	assert.Equal(t, rec2, records[1].Record)
}

func TestStdinConfirmer(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"x", false},
		{"", false},
	}
	for _, tc := range cases {
		var out strings.Builder
		c := &StdinConfirmer{In: strings.NewReader(tc.input), Out: &out}
		assert.Equal(t, tc.want, c.Confirm("continue? "), "input %q", tc.input)
		assert.Equal(t, "continue? ", out.String())
	}
}

func TestAutoConfirmer(t *testing.T) {
	assert.True(t, AutoConfirmer{}.Confirm("anything"))
}
