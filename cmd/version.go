package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 在构建时通过 -ldflags "-X github.com/ByLCY/pcbflex/cmd.Version=..." 设置。
var Version = "0.1.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
			return err
		},
	}
}
