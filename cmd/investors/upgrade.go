package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/investors/internal/update"
)

func newUpgradeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade investors to the latest version",
		Long:  `Downloads the latest GitHub release and replaces the running binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current version: %s\n", version)
			fmt.Fprintln(out, "Checking for updates...")

			rel, err := update.NewChecker(version, a.logger).Apply(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated to %s\n", rel.Version)
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "investors %s\n", version)

			check, _ := cmd.Flags().GetBool("check")
			if !check {
				return nil
			}
			if notice := update.NewChecker(version, a.logger).Notice(cmd.Context()); notice != "" {
				fmt.Fprintln(out, notice)
				fmt.Fprintln(out, update.UpdateInstructions(update.DetectInstallMethod()))
			} else {
				fmt.Fprintln(out, "Up to date.")
			}
			return nil
		},
	}
	cmd.Flags().Bool("check", false, "check GitHub for a newer release")
	return cmd
}
