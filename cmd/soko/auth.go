package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/soko/internal/api"
	"github.com/Veraticus/soko/internal/cli"
	"github.com/Veraticus/soko/internal/model"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the marketplace",
		Long: `Log in with your marketplace username and password.

The access token is kept in the local database until you log out or it
expires.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			username, _ := cmd.Flags().GetString("username")
			if username == "" {
				if username, err = p.AskRequired(ctx, "Username"); err != nil {
					return err
				}
			}
			password, err := p.AskSecret(ctx, "Password")
			if err != nil {
				return err
			}

			user, err := a.session.Login(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Logged in as %s", user.Username)))
			return nil
		},
	}
	cmd.Flags().StringP("username", "u", "", "username")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.Logout(ctx); err != nil {
				return fmt.Errorf("failed to log out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

// userTypes maps the register prompt answers to account roles.
var userTypes = map[string]model.UserType{
	"customer": model.UserCustomer,
	"business": model.UserBusiness,
	"service":  model.UserServiceProvider,
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a marketplace account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			reg, err := askRegistration(ctx, cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			user, err := a.session.Register(ctx, reg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Account %s created. Run 'soko login' to sign in.", user.Username)))
			return nil
		},
	}
}

func askRegistration(ctx context.Context, p *cli.Prompter) (model.Registration, error) {
	var reg model.Registration
	var err error

	if reg.Username, err = p.AskRequired(ctx, "Username"); err != nil {
		return reg, err
	}
	if reg.Email, err = p.AskRequired(ctx, "Email"); err != nil {
		return reg, err
	}
	if reg.Password, err = p.AskSecret(ctx, "Password"); err != nil {
		return reg, err
	}

	role, err := p.Choose(ctx, "Account type", []string{"customer", "business", "service"}, "customer")
	if err != nil {
		return reg, err
	}
	reg.UserType = userTypes[role]

	if reg.Phone, err = p.Ask(ctx, "Phone", ""); err != nil {
		return reg, err
	}
	if reg.Address, err = p.Ask(ctx, "Address", ""); err != nil {
		return reg, err
	}
	return reg, nil
}

// Profile tabs.
const (
	tabBusinesses = "businesses"
	tabProducts   = "products"
	tabServices   = "services"
	tabAll        = "all"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your account and your listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tab, _ := cmd.Flags().GetString("tab")
			tabs, err := profileTabs(tab)
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
			user, err := a.session.Profile(ctx)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderBox(user.Username, renderUser(user)))

			listings, err := loadProfileTabs(ctx, cmd.ErrOrStderr(), a.client, user.ID, tabs)
			if err != nil {
				return err
			}
			return writeProfileTabs(out, tabs, listings)
		},
	}
	cmd.Flags().String("tab", tabAll, "listings to show: businesses, products, services or all")
	return cmd
}

func profileTabs(tab string) ([]string, error) {
	switch tab = strings.ToLower(strings.TrimSpace(tab)); tab {
	case tabAll, "":
		return []string{tabBusinesses, tabProducts, tabServices}, nil
	case tabBusinesses, tabProducts, tabServices:
		return []string{tab}, nil
	default:
		return nil, fmt.Errorf("unknown tab %q (want businesses, products, services or all)", tab)
	}
}

func renderUser(user *model.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", cli.SubtleStyle.Render("Email:  "), user.Email)
	fmt.Fprintf(&b, "%s %s\n", cli.SubtleStyle.Render("Account:"), user.UserType)
	if user.Phone != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.SubtleStyle.Render("Phone:  "), user.Phone)
	}
	if user.Address != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.SubtleStyle.Render("Address:"), user.Address)
	}
	if user.Location != nil {
		fmt.Fprintf(&b, "%s %s\n", cli.SubtleStyle.Render("Located:"), user.Location)
	}
	return strings.TrimRight(b.String(), "\n")
}

// profileListings holds the listings owned by one user.
type profileListings struct {
	businesses []model.Business
	products   []model.Product
	services   []model.Service
}

// loadProfileTabs fetches the requested tabs concurrently, ticking a
// progress bar as each one arrives.
func loadProfileTabs(ctx context.Context, progress io.Writer, client *api.Client, userID int, tabs []string) (profileListings, error) {
	var out profileListings
	bar := cli.NewProgress(progress, len(tabs), "Loading your listings")

	g, ctx := errgroup.WithContext(ctx)
	for _, tab := range tabs {
		tab := tab
		g.Go(func() error {
			var err error
			switch tab {
			case tabBusinesses:
				out.businesses, err = client.Businesses.ByOwner(ctx, userID)
			case tabProducts:
				out.products, err = client.Products.BySeller(ctx, userID)
			case tabServices:
				out.services, err = client.Services.ByProvider(ctx, userID)
			}
			if err != nil {
				return fmt.Errorf("failed to load your %s: %w", tab, err)
			}
			return bar.Add(1)
		})
	}

	if err := g.Wait(); err != nil {
		return profileListings{}, err
	}
	return out, nil
}

func writeProfileTabs(w io.Writer, tabs []string, l profileListings) error {
	for _, tab := range tabs {
		fmt.Fprintln(w, cli.FormatTitle("Your "+tab))

		var err error
		switch tab {
		case tabBusinesses:
			err = writeOwned(w, l.businesses, model.KindBusiness)
		case tabProducts:
			err = writeOwned(w, l.products, model.KindProduct)
		case tabServices:
			err = writeOwned(w, l.services, model.KindService)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeOwned[T model.Listing](w io.Writer, items []T, kind model.Kind) error {
	if len(items) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render(fmt.Sprintf("You have no %s yet. Use 'soko create %s' to add one.", kind, kind)))
		return nil
	}
	return cli.WriteListings(w, items, nil)
}
