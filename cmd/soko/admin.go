package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/soko/internal/cli"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate service listings",
		Long:  `Review services waiting for verification. Requires an admin account.`,
	}

	cmd.AddCommand(adminPendingCmd())
	cmd.AddCommand(adminVerifyCmd())

	return cmd
}

func adminPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List services awaiting verification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireLogin(); err != nil {
				return err
			}

			pending, err := a.client.Services.Pending(ctx)
			if err != nil {
				return fmt.Errorf("failed to load pending services: %w", err)
			}
			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("No services are waiting for verification."))
				return nil
			}
			return cli.WriteListings(cmd.OutOrStdout(), pending, nil)
		},
	}
}

func adminVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Mark a service as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireLogin(); err != nil {
				return err
			}

			if err := a.client.Services.Verify(ctx, id); err != nil {
				return fmt.Errorf("failed to verify service %d: %w", id, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Service #%d verified", id)))
			return nil
		},
	}
}
