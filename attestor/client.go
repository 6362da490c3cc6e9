// Package attestor drives the verification workflow: deciding which
// instruction to issue for an upload, closing records, and enumerating
// attestations for a program.
package attestor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/solverify/attestor/codec"
	"github.com/solverify/attestor/interfaces"
	"github.com/solverify/attestor/pda"
)

const uploadPrompt = "Do you want to upload the program verification to the Solana blockchain? (y/n) "
const newRecordPrompt = "Program already uploaded by another signer. Do you want to upload a new program? (y/n) "

// Client orchestrates one invocation. It owns no network state of its
// own; every call path goes through the gateway.
type Client struct {
	Gateway   interfaces.ChainGateway
	Oracle    interfaces.DeploymentOracle
	Confirmer interfaces.Confirmer
	Signer    solana.PrivateKey
	Log       *slog.Logger
}

// UploadRequest carries the user-supplied provenance for one upload.
type UploadRequest struct {
	GitURL  string
	Commit  string
	Args    []string
	Program solana.PublicKey
	Version string
}

// UploadResult reports what an upload did. Skipped is set when the user
// declined a confirmation and nothing was submitted.
type UploadResult struct {
	Kind      interfaces.InstructionKind
	Record    solana.PublicKey
	Signature solana.Signature
	Skipped   bool
}

// Upload publishes or refreshes the attestation for req.Program.
//
// Two record addresses are considered: candidate A seeded with the acting
// signer and candidate B seeded with the trusted attestor. If A exists
// the record is updated. If only B exists the attestation is owned by the
// trusted attestor; after confirmation a new, separate A record is
// created alongside it. Otherwise A is initialized.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if !c.Confirmer.Confirm(uploadPrompt) {
		c.Log.Info("exiting without uploading the program")
		return &UploadResult{Skipped: true}, nil
	}

	slot, err := c.Oracle.LastDeployedSlot(ctx, req.Program)
	if err != nil {
		return nil, fmt.Errorf("unable to get last deployed slot: %w", err)
	}

	params := interfaces.InputParams{
		Version:      req.Version,
		GitURL:       req.GitURL,
		Commit:       req.Commit,
		Args:         req.Args,
		DeployedSlot: slot,
	}

	candidateA, candidateB, err := pda.DeriveCandidates(c.Signer.PublicKey(), req.Program)
	if err != nil {
		return nil, err
	}

	kind := interfaces.Initialize
	existsA, err := c.Gateway.AccountExists(ctx, candidateA)
	if err != nil {
		return nil, err
	}
	if existsA {
		c.Log.Info("record already uploaded by the current signer, updating", "record", candidateA.String())
		kind = interfaces.Update
	} else {
		existsB, err := c.Gateway.AccountExists(ctx, candidateB)
		if err != nil {
			return nil, err
		}
		if existsB && !c.Confirmer.Confirm(newRecordPrompt) {
			return &UploadResult{Skipped: true}, nil
		}
	}

	sig, err := c.Gateway.Submit(ctx, interfaces.Submission{
		Kind:    kind,
		Params:  params,
		Record:  candidateA,
		Program: req.Program,
		Signer:  c.Signer,
	})
	if err != nil {
		return nil, err
	}

	c.Log.Info("program verification uploaded", "instruction", kind.String(), "signature", sig.String())
	return &UploadResult{Kind: kind, Record: candidateA, Signature: sig}, nil
}

// CloseRecord removes the attestation the client's signer owns for
// program. It fails without submitting anything when no such record
// exists.
func (c *Client) CloseRecord(ctx context.Context, program solana.PublicKey) (solana.Signature, error) {
	signerPub := c.Signer.PublicKey()
	record, _, err := pda.Derive(signerPub, program)
	if err != nil {
		return solana.Signature{}, err
	}

	exists, err := c.Gateway.AccountExists(ctx, record)
	if err != nil {
		return solana.Signature{}, err
	}
	if !exists {
		return solana.Signature{}, fmt.Errorf(
			"%w: no record for signer %s and program %s; make sure you are providing the program address, not the derived record address, and run the list command to see existing records",
			interfaces.ErrNoAttestationFound, signerPub, program)
	}

	sig, err := c.Gateway.Submit(ctx, interfaces.Submission{
		Kind:    interfaces.Close,
		Record:  record,
		Program: program,
		Signer:  c.Signer,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	c.Log.Info("attestation record closed", "record", record.String(), "signature", sig.String())
	return sig, nil
}

// ListedRecord pairs a decoded attestation record with the account it
// was read from.
type ListedRecord struct {
	Account solana.PublicKey
	Record  interfaces.AttestationRecord
}

// List enumerates every attestation record for program, in the order the
// node returned them. Accounts that fail to decode are dropped: unrelated
// layouts are expected to appear in a broad scan.
func (c *Client) List(ctx context.Context, program solana.PublicKey) ([]ListedRecord, error) {
	accounts, err := c.Gateway.ScanAttestationAccounts(ctx, program)
	if err != nil {
		return nil, err
	}

	records := make([]ListedRecord, 0, len(accounts))
	for _, acct := range accounts {
		rec, err := codec.DecodeRecord(acct.Data)
		if err != nil {
			c.Log.Debug("skipping undecodable account", "account", acct.Address.String(), "err", err)
			continue
		}
		records = append(records, ListedRecord{Account: acct.Address, Record: rec})
	}
	return records, nil
}
