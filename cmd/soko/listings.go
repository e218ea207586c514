package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/soko/internal/cli"
	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/form"
	"github.com/Veraticus/soko/internal/model"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <services|businesses|products> <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := parseListingKind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			item, err := getListing(ctx, a, kind, id)
			if err != nil {
				return err
			}

			var center *model.Coordinate
			if last, ok := a.resolver.Last(ctx); ok {
				center = &last
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(item.DisplayName(), cli.RenderListing(item, center)))
			return nil
		},
	}
}

func getListing(ctx context.Context, a *app, kind model.Kind, id int) (model.Listing, error) {
	switch kind {
	case model.KindService:
		svc, err := a.client.Services.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return *svc, nil
	case model.KindBusiness:
		b, err := a.client.Businesses.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return *b, nil
	default:
		p, err := a.client.Products.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return *p, nil
	}
}

// addFormFlags registers the flags of every listing form.
func addFormFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("name", "", "business or product name, or service title")
	flags.String("description", "", "description")
	flags.Int("category", 0, "category id")
	flags.Float64("price", 0, "price, or hourly rate for hourly services (KES)")
	flags.String("pricing", "", "service pricing: hourly or fixed")
	flags.Float64("area", 0, "service area (km)")
	flags.String("condition", "", "product condition: new, used or refurb")
	flags.Int("stock", 0, "units in stock")
	flags.String("address", "", "business address")
	flags.String("email", "", "business contact email")
	flags.String("phone", "", "business contact phone")
	flags.Bool("here", false, "use your current location")
	flags.Bool("enhance", false, "let the AI assistant improve the description")
	flags.Bool("ai-tags", false, "generate product tags with the AI assistant")
	flags.Bool("no-input", false, "never prompt; use flags and current values only")
	addLocationFlags(cmd)
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <services|businesses|products>",
		Short: "Create a listing",
		Long: `Create a business, product or service.

Fields missing from the flags are asked for. A listing needs a location:
pass --here, --near or --lat/--lng, or answer the location prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaveListing(cmd, args[0], 0)
		},
	}
	addFormFlags(cmd)
	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <services|businesses|products> <id>",
		Short: "Update one of your listings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return runSaveListing(cmd, args[0], id)
		},
	}
	addFormFlags(cmd)
	return cmd
}

// runSaveListing creates a listing, or updates listing id when id > 0.
func runSaveListing(cmd *cobra.Command, kindArg string, id int) error {
	ctx := cmd.Context()

	kind, err := parseListingKind(kindArg)
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

	fields := newFieldReader(cmd, a.resolver)
	opts := submitOptions{}
	opts.enhance, _ = cmd.Flags().GetBool("enhance")
	opts.tags, _ = cmd.Flags().GetBool("ai-tags")
	w := cmd.OutOrStdout()

	switch kind {
	case model.KindService:
		f := form.NewServiceForm(a.client.Services, a.client.AI)
		if id > 0 {
			existing, err := a.client.Services.Get(ctx, id)
			if err != nil {
				return err
			}
			f = form.EditServiceForm(a.client.Services, a.client.AI, *existing)
		}
		if err := fillServiceDraft(fields, f.Draft()); err != nil {
			return err
		}
		return saveAndReport(ctx, w, f, opts)

	case model.KindBusiness:
		f := form.NewBusinessForm(a.client.Businesses, a.client.AI)
		if id > 0 {
			existing, err := a.client.Businesses.Get(ctx, id)
			if err != nil {
				return err
			}
			f = form.EditBusinessForm(a.client.Businesses, a.client.AI, *existing)
		}
		if err := fillBusinessDraft(fields, f.Draft()); err != nil {
			return err
		}
		return saveAndReport(ctx, w, f, opts)

	default:
		f := form.NewProductForm(a.client.Products, a.client.AI)
		if id > 0 {
			existing, err := a.client.Products.Get(ctx, id)
			if err != nil {
				return err
			}
			f = form.EditProductForm(a.client.Products, a.client.AI, *existing)
		}
		if err := fillProductDraft(fields, f.Draft()); err != nil {
			return err
		}
		return saveAndReport(ctx, w, f, opts)
	}
}

type submitOptions struct {
	enhance bool
	tags    bool
}

func saveAndReport[T model.Listing, In any, D form.Draft[In]](ctx context.Context, w io.Writer, f *form.Form[T, In, D], opts submitOptions) error {
	editing := f.Editing()
	item, err := submitForm(ctx, w, f, opts)
	if err != nil {
		return err
	}

	verb := "Created"
	if editing {
		verb = "Updated"
	}
	listing := *item
	fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s %s #%d: %s",
		verb, listing.Kind().Singular(), listing.ListingID(), listing.DisplayName())))
	return nil
}

// submitForm runs the optional AI helpers and submits the form. AI failures
// are reported and never stop the submission.
func submitForm[T model.Listing, In any, D form.Draft[In]](ctx context.Context, w io.Writer, f *form.Form[T, In, D], opts submitOptions) (*T, error) {
	if opts.enhance {
		before := f.Draft().Text()
		if err := f.Enhance(ctx); err != nil {
			fmt.Fprintln(w, cli.FormatWarning(f.Status().Advisory))
		} else if f.Draft().Text() != before {
			fmt.Fprintln(w, cli.FormatInfo(cli.RobotIcon+" Description enhanced"))
		}
	}

	if opts.tags {
		tags, err := f.GenerateTags(ctx)
		switch {
		case err != nil:
			fmt.Fprintln(w, cli.FormatWarning(f.Status().Advisory))
		case len(tags) > 0:
			fmt.Fprintln(w, cli.FormatInfo(cli.RobotIcon+" Tags: "+strings.Join(tags, ", ")))
		}
	}

	interrupts.SetPending(true)
	item, err := f.Submit(ctx)
	interrupts.SetPending(false)
	if err != nil {
		msg := f.Status().Error
		if msg == "" {
			msg = err.Error()
		}
		return nil, common.NewUserError(msg, err)
	}
	return item, nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <services|businesses|products> <id>",
		Short: "Delete one of your listings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := parseListingKind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
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

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := p.Confirm(ctx, fmt.Sprintf("Delete %s #%d?", kind.Singular(), id), false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("Nothing deleted."))
					return nil
				}
			}

			if err := deleteListing(ctx, a, kind, id); err != nil {
				return fmt.Errorf("failed to delete %s %d: %w", kind.Singular(), id, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s #%d", kind.Singular(), id)))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func deleteListing(ctx context.Context, a *app, kind model.Kind, id int) error {
	switch kind {
	case model.KindService:
		return a.client.Services.Delete(ctx, id)
	case model.KindBusiness:
		return a.client.Businesses.Delete(ctx, id)
	default:
		return a.client.Products.Delete(ctx, id)
	}
}
