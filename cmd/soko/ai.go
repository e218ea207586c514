package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/soko/internal/api"
	"github.com/Veraticus/soko/internal/cli"
)

func aiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Use the AI writing assistant",
		Long:  `Improve listing descriptions, generate product tags and get search suggestions.`,
	}

	cmd.AddCommand(aiEnhanceCmd())
	cmd.AddCommand(aiTagsCmd())
	cmd.AddCommand(aiSuggestCmd())

	return cmd
}

func aiEnhanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enhance <text>",
		Short: "Rewrite a listing description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			enhanced, err := a.client.AI.EnhanceText(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to enhance text: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), enhanced)
			return nil
		},
	}
}

func aiTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <text>",
		Short: "Generate tags for a product description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			tags, err := a.client.AI.GenerateTags(ctx, strings.Join(args, " "))
			if errors.Is(err, api.ErrTagsPending) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Tags are still being generated. Try again in a moment."))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to generate tags: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, ", "))
			return nil
		},
	}
}

func aiSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <search>",
		Short: "Suggest better search terms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			suggestions, err := a.client.AI.Suggestions(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to get suggestions: %w", err)
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No suggestions."))
				return nil
			}
			for i, s := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s\n", i+1, s)
			}
			return nil
		},
	}
}
