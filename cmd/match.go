package cmd

import (
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <record-prefix>",
	Short: "Flatten only the subkey owning a flat-record prefix",
	Long: `match resolves which subkey a flat record (or record prefix) belongs
to, flattens that subkey alone, and prints the records anchored at the
prefix. Nothing resolving is not an error; the output is simply empty.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return engine.WriteMatching(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
