package cmd

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	errwrap "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/observability"
	"github.com/b64forge/b64forge/internal/output"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode text, a file or stdin as Base64",
	Long: `Encode the positional argument, the file named by --file, or stdin.

Padding follows codec.padding from the configuration unless --no-padding
is given.`,
	Example: `  b64forge encode Man
  b64forge encode --file image.png --no-padding
  printf 'fo' | b64forge encode --format json`,
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

		path, _ := cmd.Flags().GetString("file")
		data, err := readInput(args, path, cmd.InOrStdin(), cfg.Codec.MaxInputBytes)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errwrap.WrapFileNotFound(cmd.Context(), err, "input file not found")
			}
			return errwrap.WrapInvalidInput(cmd.Context(), err, "failed to read input")
		}

		enc := cfg.Codec.Encoder()
		if noPadding, _ := cmd.Flags().GetBool("no-padding"); noPadding {
			enc.Padding = false
		}

		result := encodeInput(data, enc)
		observability.CLILogger.Debug("Encoded input",
			zap.Int("input_bytes", result.InputLength),
			zap.Int("symbols", result.OutputLength),
			zap.Bool("padding", enc.Padding))

		return writeResult(cmd.OutOrStdout(), format, result)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().String("file", "", "read input from a file (- for stdin)")
	encodeCmd.Flags().Bool("no-padding", false, "omit '=' padding from the final group")
}
