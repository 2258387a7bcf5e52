package cmd

import (
	"io"

	"github.com/spf13/cobra"

	errwrap "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/output"
)

var alphabetCmd = &cobra.Command{
	Use:   "alphabet",
	Short: "Print the Base64 symbol table",
	Long:  "Print every 6-bit value with its symbol, character code and bit pattern, followed by the padding symbol.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(cfg.Output.Format)
		if err != nil {
			return errwrap.WrapInvalidInput(cmd.Context(), err, "invalid output format")
		}

		rendered, err := output.FormatAlphabet(format)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), rendered)
		return err
	},
}

func init() {
	rootCmd.AddCommand(alphabetCmd)
}
