package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"

	"github.com/solverify/attestor/attestor"
	"github.com/solverify/attestor/cmd/flags"
	"github.com/solverify/attestor/common"
	"github.com/solverify/attestor/gateway"
	"github.com/solverify/attestor/interfaces"
	"github.com/solverify/attestor/solconfig"
)

func main() {
	app := &cli.App{
		Name:  "attestor",
		Usage: "publish and query on-chain build-verification records",
		Commands: []*cli.Command{
			{
				Name:        "upload",
				Usage:       "publish or refresh the attestation for a program",
				Description: "Creates the attestation record owned by the signer, or updates it when it already exists.",
				Flags: append([]cli.Flag{
					flags.ProgramIDFlag,
					flags.GitURLFlag,
					flags.CommitFlag,
					flags.ArgFlag,
					flags.URLFlag,
					flags.KeypairFlag,
					flags.SkipPromptFlag,
				}, flags.LoggingFlags...),
				Action: runUpload,
			},
			{
				Name:        "close",
				Usage:       "remove the signer-owned attestation for a program",
				Description: "Closes the record derived from the default signer. Fails when no such record exists.",
				Flags: append([]cli.Flag{
					flags.ProgramIDFlag,
				}, flags.LoggingFlags...),
				Action: runClose,
			},
			{
				Name:        "list",
				Usage:       "enumerate all attestation records for a program",
				Flags: append([]cli.Flag{
					flags.ProgramIDFlag,
					flags.URLFlag,
				}, flags.LoggingFlags...),
				Action: runList,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newClient resolves config, endpoint, and signer, and wires up the
// gateway. Each command invocation builds a fresh client.
func newClient(cCtx *cli.Context, logger *slog.Logger) (*attestor.Client, error) {
	cfg, err := solconfig.LoadDefault()
	if err != nil {
		return nil, err
	}

	signer, err := cfg.Keypair(cCtx.String(flags.KeypairFlag.Name))
	if err != nil {
		return nil, err
	}

	endpoint := interfaces.ParseEndpoint(cCtx.String(flags.URLFlag.Name))
	gw := gateway.New(endpoint.URL(cfg.JSONRPCURL), logger)
	logger.Info("using connection url", "url", gw.URL())

	var confirmer interfaces.Confirmer = attestor.NewStdinConfirmer()
	if cCtx.Bool(flags.SkipPromptFlag.Name) {
		confirmer = attestor.AutoConfirmer{}
	}

	return &attestor.Client{
		Gateway:   gw,
		Oracle:    gw,
		Confirmer: confirmer,
		Signer:    signer,
		Log:       logger,
	}, nil
}

func parseProgramID(cCtx *cli.Context) (solana.PublicKey, error) {
	program, err := solana.PublicKeyFromBase58(cCtx.String(flags.ProgramIDFlag.Name))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: could not parse program id: %v", interfaces.ErrAddressDerivation, err)
	}
	return program, nil
}

func runUpload(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	program, err := parseProgramID(cCtx)
	if err != nil {
		return err
	}

	client, err := newClient(cCtx, logger)
	if err != nil {
		return err
	}

	result, err := client.Upload(cCtx.Context, attestor.UploadRequest{
		GitURL:  cCtx.String(flags.GitURLFlag.Name),
		Commit:  cCtx.String(flags.CommitFlag.Name),
		Args:    cCtx.StringSlice(flags.ArgFlag.Name),
		Program: program,
		Version: common.Version,
	})
	if err != nil {
		return err
	}
	if result.Skipped {
		return nil
	}

	fmt.Printf("Program uploaded successfully. Transaction ID: %s\n", result.Signature)
	return nil
}

func runClose(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	program, err := parseProgramID(cCtx)
	if err != nil {
		return err
	}

	// Close uses only the default signer and endpoint, no overrides.
	client, err := newClient(cCtx, logger)
	if err != nil {
		return err
	}

	sig, err := client.CloseRecord(cCtx.Context, program)
	if err != nil {
		return err
	}

	fmt.Printf("Attestation record closed. Transaction ID: %s\n", sig)
	return nil
}

func runList(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	program, err := parseProgramID(cCtx)
	if err != nil {
		return err
	}

	client, err := newClient(cCtx, logger)
	if err != nil {
		return err
	}

	records, err := client.List(cCtx.Context, program)
	if err != nil {
		return err
	}

	for _, rec := range records {
		fmt.Printf("Record Account: %s\n%s\n", rec.Account, rec.Record)
	}
	return nil
}
