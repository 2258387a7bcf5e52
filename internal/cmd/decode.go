package cmd

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b64forge/b64forge/internal/codec"
	errwrap "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/observability"
	"github.com/b64forge/b64forge/internal/output"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [text]",
	Short: "Decode Base64 from an argument, a file or stdin",
	Long: `Decode the positional argument, the file named by --file, or stdin.

Trailing line endings are ignored. The default legacy policy tolerates
padding anywhere the bit arithmetic allows; --strict (or codec.policy:
strict) enforces RFC 4648 padding and group rules.

With the text format the decoded bytes are written unchanged.`,
	Example: `  b64forge decode TWFu
  b64forge decode --strict --file payload.b64 > payload.bin
  echo Zm8= | b64forge decode --format table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(cfg.Output.Format)
		if err != nil {
			return errwrap.WrapInvalidInput(cmd.Context(), err, "invalid output format")
		}

		dec, err := cfg.Codec.Decoder()
		if err != nil {
			return errwrap.WrapConfigInvalid(cmd.Context(), err, "invalid decode policy")
		}
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			dec.Policy = codec.PolicyStrict
		}

		path, _ := cmd.Flags().GetString("file")
		data, err := readInput(args, path, cmd.InOrStdin(), cfg.Codec.MaxInputBytes)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errwrap.WrapFileNotFound(cmd.Context(), err, "input file not found")
			}
			return errwrap.WrapInvalidInput(cmd.Context(), err, "failed to read input")
		}

		result, err := decodeInput(cmd.Context(), data, dec)
		if err != nil {
			observability.CLILogger.Debug("Decode failed",
				zap.String("policy", dec.Policy.String()),
				zap.Error(err))
			return err
		}

		observability.CLILogger.Debug("Decoded input",
			zap.Int("symbols", result.InputLength),
			zap.Int("output_bytes", result.OutputLength),
			zap.String("policy", result.Policy))

		return writeResult(cmd.OutOrStdout(), format, result)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().String("file", "", "read input from a file (- for stdin)")
	decodeCmd.Flags().Bool("strict", false, "reject misplaced padding and truncated groups (RFC 4648)")
}
