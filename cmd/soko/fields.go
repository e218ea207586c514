package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/soko/internal/cli"
	"github.com/Veraticus/soko/internal/form"
	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
)

// fieldReader fills a draft from flags, prompting for whatever the flags
// leave out when the command runs interactively.
type fieldReader struct {
	ctx         context.Context
	cmd         *cobra.Command
	prompter    *cli.Prompter
	resolver    *geo.Resolver
	interactive bool
}

func newFieldReader(cmd *cobra.Command, resolver *geo.Resolver) fieldReader {
	noInput, _ := cmd.Flags().GetBool("no-input")
	return fieldReader{
		ctx:         cmd.Context(),
		cmd:         cmd,
		prompter:    cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		resolver:    resolver,
		interactive: !noInput,
	}
}

func (f fieldReader) text(flag, label, current string, required bool) (string, error) {
	if f.cmd.Flags().Changed(flag) {
		return f.cmd.Flags().GetString(flag)
	}
	if !f.interactive {
		return current, nil
	}
	if required && current == "" {
		return f.prompter.AskRequired(f.ctx, label)
	}
	return f.prompter.Ask(f.ctx, label, current)
}

func (f fieldReader) number(flag, label string, current float64) (float64, error) {
	if f.cmd.Flags().Changed(flag) {
		return f.cmd.Flags().GetFloat64(flag)
	}
	if !f.interactive {
		return current, nil
	}
	return f.prompter.AskFloat(f.ctx, label, current)
}

func (f fieldReader) integer(flag, label string, current int) (int, error) {
	if f.cmd.Flags().Changed(flag) {
		return f.cmd.Flags().GetInt(flag)
	}
	if !f.interactive {
		return current, nil
	}
	return f.prompter.AskInt(f.ctx, label, current)
}

func (f fieldReader) choice(flag, label string, options []string, current string) (string, error) {
	if f.cmd.Flags().Changed(flag) {
		return f.cmd.Flags().GetString(flag)
	}
	if !f.interactive {
		return current, nil
	}
	return f.prompter.Choose(f.ctx, label, options, current)
}

// location picks the listing position: an explicit flag, --here, the
// current value, or, interactively, the user's answer.
func (f fieldReader) location(current *model.Coordinate) (*model.Coordinate, error) {
	override, err := locationOverride(f.cmd)
	if err != nil || override != nil {
		return override, err
	}

	out := f.cmd.OutOrStdout()
	if here, _ := f.cmd.Flags().GetBool("here"); here {
		res := f.resolver.Resolve(f.ctx)
		if res.Warning != "" {
			fmt.Fprintln(out, cli.FormatWarning(res.Warning))
		}
		c := res.Coordinate
		return &c, nil
	}

	if current != nil || !f.interactive {
		return current, nil
	}

	res := f.resolver.Resolve(f.ctx)
	if res.Warning != "" {
		fmt.Fprintln(out, cli.FormatWarning(res.Warning))
	}
	useHere, err := f.prompter.Confirm(f.ctx, fmt.Sprintf("%s Use %s as the location?", cli.PinIcon, res.Coordinate), true)
	if err != nil {
		return nil, err
	}
	if useHere {
		c := res.Coordinate
		return &c, nil
	}

	answer, err := f.prompter.AskRequired(f.ctx, "Location (lat,lng)")
	if err != nil {
		return nil, err
	}
	c, err := parseCoordinate(answer)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (f fieldReader) category(current int) (int, error) {
	return f.integer("category", "Category id (see 'soko categories', 0 for none)", current)
}

func fillServiceDraft(f fieldReader, d *form.ServiceDraft) error {
	var err error
	if d.Title, err = f.text("name", "Title", d.Title, true); err != nil {
		return err
	}
	if d.Description, err = f.text("description", "Description", d.Description, false); err != nil {
		return err
	}
	if d.CategoryID, err = f.category(d.CategoryID); err != nil {
		return err
	}

	pricing, err := f.choice("pricing", "Pricing", []string{string(form.PricingHourly), string(form.PricingFixed)}, string(d.Pricing))
	if err != nil {
		return err
	}
	if d.Pricing, err = form.ParsePricing(pricing); err != nil {
		return err
	}

	label := "Hourly rate (KES)"
	if d.Pricing == form.PricingFixed {
		label = "Fixed price (KES)"
	}
	if d.Price, err = f.number("price", label, d.Price); err != nil {
		return err
	}
	if d.AreaKm, err = f.number("area", "Service area (km)", d.AreaKm); err != nil {
		return err
	}

	d.Location, err = f.location(d.Location)
	return err
}

func fillProductDraft(f fieldReader, d *form.ProductDraft) error {
	var err error
	if d.Name, err = f.text("name", "Name", d.Name, true); err != nil {
		return err
	}
	if d.Description, err = f.text("description", "Description", d.Description, false); err != nil {
		return err
	}
	if d.CategoryID, err = f.category(d.CategoryID); err != nil {
		return err
	}
	if d.Price, err = f.number("price", "Price (KES)", d.Price); err != nil {
		return err
	}

	options := []string{
		strings.ToLower(string(model.ConditionNew)),
		strings.ToLower(string(model.ConditionUsed)),
		strings.ToLower(string(model.ConditionRefurbished)),
	}
	condition, err := f.choice("condition", "Condition", options, strings.ToLower(string(d.Condition)))
	if err != nil {
		return err
	}
	if d.Condition, err = model.ParseCondition(condition); err != nil {
		return err
	}
	if d.Stock, err = f.integer("stock", "Stock", d.Stock); err != nil {
		return err
	}

	d.Location, err = f.location(d.Location)
	return err
}

func fillBusinessDraft(f fieldReader, d *form.BusinessDraft) error {
	var err error
	if d.Name, err = f.text("name", "Name", d.Name, true); err != nil {
		return err
	}
	if d.Description, err = f.text("description", "Description", d.Description, false); err != nil {
		return err
	}
	if d.Address, err = f.text("address", "Address", d.Address, false); err != nil {
		return err
	}
	if d.ContactEmail, err = f.text("email", "Contact email", d.ContactEmail, false); err != nil {
		return err
	}
	if d.ContactPhone, err = f.text("phone", "Contact phone", d.ContactPhone, false); err != nil {
		return err
	}
	if d.CategoryID, err = f.category(d.CategoryID); err != nil {
		return err
	}

	d.Location, err = f.location(d.Location)
	return err
}
