package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the registered vendor adapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		for _, name := range reg.Vendors() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vendorsCmd)
}
