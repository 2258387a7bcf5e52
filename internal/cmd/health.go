package cmd

import (
	"context"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b64forge/b64forge/internal/codec"
	errwrap "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/observability"
)

// selfCheckVectors are encoded, decoded and compared by the health command.
var selfCheckVectors = []struct {
	plain   string
	encoded string
}{
	{"Man", "TWFu"},
	{"f", "Zg=="},
	{"fo", "Zm8="},
	{"foobar", "Zm9vYmFy"},
}

// runSelfCheck returns the first vector that fails to round-trip.
func runSelfCheck() error {
	for _, v := range selfCheckVectors {
		if got := codec.EncodeToString([]byte(v.plain), true); got != v.encoded {
			return errwrap.NewInternalError("encode mismatch for " + v.plain + ": got " + got)
		}
		for _, policy := range []codec.Policy{codec.PolicyLegacy, codec.PolicyStrict} {
			got, err := codec.Decoder{Policy: policy}.DecodeString(v.encoded)
			if err != nil {
				return errwrap.WrapInternal(context.Background(), err, "decode failed for "+v.encoded)
			}
			if string(got) != v.plain {
				return errwrap.NewInternalError("decode mismatch for " + v.encoded + ": got " + string(got))
			}
		}
	}
	return nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long:  "Run a self-health check: configuration loads and the codec round-trips its reference vectors.",
	Run: func(cmd *cobra.Command, args []string) {
		observability.CLILogger.Info("Running health check...")

		if _, err := loadConfig(cmd.Context()); err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Configuration invalid", err)
			return
		}
		observability.CLILogger.Info("✅ Configuration loaded")

		if err := runSelfCheck(); err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitFailure, "Codec self-check failed", err)
			return
		}
		observability.CLILogger.Info("✅ Codec reference vectors round-trip",
			zap.Int("vectors", len(selfCheckVectors)))

		observability.CLILogger.Info("✅ All health checks passed")
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
