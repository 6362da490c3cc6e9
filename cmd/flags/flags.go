// Package flags defines the shared command-line flags and logger setup
// for the attestor commands.
package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/solverify/attestor/common"
)

var ProgramIDFlag = &cli.StringFlag{
	Name:     "program-id",
	Required: true,
	Usage:    "Address of the verified program. Base58 string",
}

var URLFlag = &cli.StringFlag{
	Name:  "url",
	Usage: "RPC endpoint: 'm' mainnet, 'd' devnet, 'l' localnet, a full URL, or empty for the Solana CLI config default",
}

var KeypairFlag = &cli.StringFlag{
	Name:  "keypair",
	Usage: "Path to the signer keypair file, overriding the Solana CLI config default",
}

var SkipPromptFlag = &cli.BoolFlag{
	Name:    "skip-prompt",
	Aliases: []string{"y"},
	Usage:   "Answer yes to all confirmation prompts",
}

var GitURLFlag = &cli.StringFlag{
	Name:     "git-url",
	Required: true,
	Usage:    "Source repository URL the program was built from",
}

var CommitFlag = &cli.StringFlag{
	Name:  "commit",
	Usage: "Source commit hash the program was built from",
}

var ArgFlag = &cli.StringSliceFlag{
	Name:  "arg",
	Usage: "Build argument, repeatable",
}

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Usage: "log debug messages",
}

var LogUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Usage: "generate a uuid and add to all log messages",
}

// LoggingFlags are appended to every command.
var LoggingFlags = []cli.Flag{
	LogJSONFlag,
	LogDebugFlag,
	LogUIDFlag,
}

// SetupLogger builds the logger from the logging flags.
func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJSONFlag.Name),
		Service: "attestor",
		Version: common.Version,
	})

	if cCtx.Bool(LogUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}
