// Package gateway implements the client's network boundary over a Solana
// JSON-RPC node: account lookups, verification-program account scans, and
// signed instruction submission.
package gateway

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solverify/attestor/codec"
	"github.com/solverify/attestor/interfaces"
	"github.com/solverify/attestor/pda"
)

// confirmPollInterval is how often Submit polls for confirmation after a
// transaction was accepted by the node.
const confirmPollInterval = 500 * time.Millisecond

// Gateway implements interfaces.ChainGateway and
// interfaces.DeploymentOracle against a single RPC endpoint. Each
// invocation of the client constructs its own Gateway; there is no shared
// state across invocations.
type Gateway struct {
	client *rpc.Client
	url    string
	log    *slog.Logger
}

// New creates a gateway connected to the given RPC URL.
func New(url string, log *slog.Logger) *Gateway {
	return &Gateway{
		client: rpc.New(url),
		url:    url,
		log:    log,
	}
}

// URL returns the RPC endpoint the gateway is connected to.
func (g *Gateway) URL() string {
	return g.url
}

// AccountExists reports whether the account is present on-chain. A
// not-found response is not an error.
func (g *Gateway) AccountExists(ctx context.Context, addr solana.PublicKey) (bool, error) {
	out, err := g.client.GetAccountInfo(ctx, addr)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("account lookup for %s failed: %w", addr, err)
	}
	return out != nil && out.Value != nil, nil
}

// ScanAttestationAccounts returns every verification-program account
// whose embedded program id matches, in node order. The program id sits
// immediately after the account-type tag, hence the memcmp offset.
func (g *Gateway) ScanAttestationAccounts(ctx context.Context, program solana.PublicKey) ([]interfaces.RawAccount, error) {
	out, err := g.client.GetProgramAccountsWithOpts(ctx, pda.VerifyProgramID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: codec.AccountTagLen,
					Bytes:  solana.Base58(program.Bytes()),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("program account scan failed: %w", err)
	}

	accounts := make([]interfaces.RawAccount, 0, len(out))
	for _, keyed := range out {
		accounts = append(accounts, interfaces.RawAccount{
			Address: keyed.Pubkey,
			Data:    keyed.Account.Data.GetBinary(),
		})
	}
	return accounts, nil
}

// Submit builds the instruction, signs it with the submission's signer,
// sends it, and blocks until the network confirms it. One attempt only;
// any rejection aborts with an error wrapping interfaces.ErrSubmission.
func (g *Gateway) Submit(ctx context.Context, sub interfaces.Submission) (solana.Signature, error) {
	data, err := codec.EncodeInstruction(sub.Kind, sub.Params)
	if err != nil {
		return solana.Signature{}, err
	}

	signerPub := sub.Signer.PublicKey()
	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(sub.Record, true, false),
		solana.NewAccountMeta(signerPub, false, true),
		solana.NewAccountMeta(sub.Program, false, false),
	}
	if sub.Kind != interfaces.Close {
		metas = append(metas, solana.NewAccountMeta(solana.SystemProgramID, false, false))
	}

	ix := solana.NewInstruction(pda.VerifyProgramID, metas, data)

	recent, err := g.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: unable to fetch latest blockhash: %v", interfaces.ErrSubmission, err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		recent.Value.Blockhash,
		solana.TransactionPayer(signerPub),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: unable to build transaction: %v", interfaces.ErrSubmission, err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(signerPub) {
			return &sub.Signer
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: unable to sign transaction: %v", interfaces.ErrSubmission, err)
	}

	sig, err := g.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %v", interfaces.ErrSubmission, err)
	}

	g.log.Debug("transaction sent, awaiting confirmation", "signature", sig.String())
	if err := g.awaitConfirmation(ctx, sig); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

// awaitConfirmation polls signature status until the transaction reaches
// confirmed commitment. No deadline of its own: cancellation comes from
// ctx.
func (g *Gateway) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	for {
		out, err := g.client.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return fmt.Errorf("%w: status poll failed: %v", interfaces.ErrSubmission, err)
		}
		if len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return fmt.Errorf("%w: transaction failed on-chain: %v", interfaces.ErrSubmission, status.Err)
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", interfaces.ErrSubmission, ctx.Err())
		case <-time.After(confirmPollInterval):
		}
	}
}

// LastDeployedSlot implements interfaces.DeploymentOracle for programs
// owned by the upgradeable BPF loader: it follows the program account to
// its programdata account and reads the deployment slot recorded there.
func (g *Gateway) LastDeployedSlot(ctx context.Context, program solana.PublicKey) (uint64, error) {
	acct, err := g.client.GetAccountInfo(ctx, program)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", interfaces.ErrUpstreamLookup, err)
	}
	if acct == nil || acct.Value == nil {
		return 0, fmt.Errorf("%w: program %s not found", interfaces.ErrUpstreamLookup, program)
	}
	if !acct.Value.Owner.Equals(solana.BPFLoaderUpgradeableProgramID) {
		return 0, fmt.Errorf("%w: program %s is not owned by the upgradeable loader", interfaces.ErrUpstreamLookup, program)
	}

	// Upgradeable loader program account: u32 state tag (2 = Program)
	// followed by the programdata address.
	data := acct.Value.Data.GetBinary()
	if len(data) < 36 || binary.LittleEndian.Uint32(data[:4]) != 2 {
		return 0, fmt.Errorf("%w: unexpected program account layout for %s", interfaces.ErrUpstreamLookup, program)
	}
	programData := solana.PublicKeyFromBytes(data[4:36])

	pd, err := g.client.GetAccountInfo(ctx, programData)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", interfaces.ErrUpstreamLookup, err)
	}
	if pd == nil || pd.Value == nil {
		return 0, fmt.Errorf("%w: programdata %s not found", interfaces.ErrUpstreamLookup, programData)
	}

	// Programdata account: u32 state tag (3 = ProgramData) then the
	// u64 last-deployed slot.
	pdata := pd.Value.Data.GetBinary()
	if len(pdata) < 12 || binary.LittleEndian.Uint32(pdata[:4]) != 3 {
		return 0, fmt.Errorf("%w: unexpected programdata layout for %s", interfaces.ErrUpstreamLookup, programData)
	}
	return binary.LittleEndian.Uint64(pdata[4:12]), nil
}
