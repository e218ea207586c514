package form

import (
	"fmt"
	"strings"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
)

// Draft is the editable state of one form.
type Draft[In any] interface {
	// Position is the location picked on the map, nil until one is picked.
	Position() *model.Coordinate
	Text() string
	SetText(string)
	// Input validates the draft and builds the request body.
	Input() (In, error)
}

// Pricing is how a service is billed.
type Pricing string

// Pricing models.
const (
	PricingHourly Pricing = "hourly"
	PricingFixed  Pricing = "fixed"
)

// ParsePricing accepts "hourly" or "fixed".
func ParsePricing(s string) (Pricing, error) {
	switch p := Pricing(strings.ToLower(strings.TrimSpace(s))); p {
	case PricingHourly, PricingFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: pricing model %q (want hourly or fixed)", common.ErrInvalidInput, s)
	}
}

// DefaultServiceAreaKm pre-fills the service area of a new service.
const DefaultServiceAreaKm = 10

// ServiceDraft is the service form.
type ServiceDraft struct {
	Location    *model.Coordinate
	Title       string
	Description string
	Pricing     Pricing
	CategoryID  int
	Price       float64
	AreaKm      float64
}

// NewServiceDraft returns an empty service form with its defaults.
func NewServiceDraft() *ServiceDraft {
	return &ServiceDraft{Pricing: PricingHourly, AreaKm: DefaultServiceAreaKm}
}

// ServiceDraftFrom seeds a draft from an existing service.
func ServiceDraftFrom(svc model.Service) *ServiceDraft {
	d := NewServiceDraft()
	d.Title = svc.Title
	d.Description = svc.Description
	d.CategoryID = svc.Category.ID()
	d.Location = copyCoordinate(svc.Location)
	if svc.ServiceArea != nil {
		d.AreaKm = svc.AreaKm()
	}
	switch {
	case svc.HourlyRate != nil:
		d.Price = svc.HourlyRate.Float()
	case svc.FixedPrice != nil:
		d.Pricing = PricingFixed
		d.Price = svc.FixedPrice.Float()
	}
	return d
}

// Position implements Draft.
func (d *ServiceDraft) Position() *model.Coordinate { return d.Location }

// Text implements Draft.
func (d *ServiceDraft) Text() string { return d.Description }

// SetText implements Draft.
func (d *ServiceDraft) SetText(s string) { d.Description = s }

// Input implements Draft. Only the price field matching the pricing model is
// populated.
func (d *ServiceDraft) Input() (model.ServiceInput, error) {
	if strings.TrimSpace(d.Title) == "" {
		return model.ServiceInput{}, requiredField("title")
	}
	if d.Price < 0 {
		return model.ServiceInput{}, fmt.Errorf("%w: price cannot be negative", common.ErrInvalidInput)
	}

	in := model.ServiceInput{
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Category:    categoryRef(d.CategoryID),
		Location:    d.Location,
		ServiceArea: d.AreaKm,
	}
	if d.Pricing == PricingFixed {
		in.FixedPrice = model.NewAmount(d.Price)
	} else {
		in.HourlyRate = model.NewAmount(d.Price)
	}
	return in, nil
}

// ProductDraft is the product form.
type ProductDraft struct {
	Location    *model.Coordinate
	Name        string
	Description string
	Condition   model.Condition
	Tags        []string
	CategoryID  int
	Price       float64
	Stock       int
}

// NewProductDraft returns an empty product form: new condition, one in stock.
func NewProductDraft() *ProductDraft {
	return &ProductDraft{Condition: model.ConditionNew, Stock: 1}
}

// ProductDraftFrom seeds a draft from an existing product.
func ProductDraftFrom(p model.Product) *ProductDraft {
	d := NewProductDraft()
	d.Name = p.Name
	d.Description = p.Description
	d.CategoryID = p.Category.ID()
	d.Location = copyCoordinate(p.Location)
	d.Tags = append([]string(nil), p.AITags...)
	d.Stock = p.Stock
	if p.Condition != "" {
		d.Condition = p.Condition
	}
	if p.Price != nil {
		d.Price = p.Price.Float()
	}
	return d
}

// Position implements Draft.
func (d *ProductDraft) Position() *model.Coordinate { return d.Location }

// Text implements Draft.
func (d *ProductDraft) Text() string { return d.Description }

// SetText implements Draft.
func (d *ProductDraft) SetText(s string) { d.Description = s }

// SetTags replaces the AI tags.
func (d *ProductDraft) SetTags(tags []string) { d.Tags = tags }

// Input implements Draft.
func (d *ProductDraft) Input() (model.ProductInput, error) {
	if strings.TrimSpace(d.Name) == "" {
		return model.ProductInput{}, requiredField("name")
	}
	if d.Stock < 0 {
		return model.ProductInput{}, fmt.Errorf("%w: stock cannot be negative", common.ErrInvalidInput)
	}
	if d.Price < 0 {
		return model.ProductInput{}, fmt.Errorf("%w: price cannot be negative", common.ErrInvalidInput)
	}

	return model.ProductInput{
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Price:       model.NewAmount(d.Price),
		Category:    categoryRef(d.CategoryID),
		Condition:   d.Condition,
		Stock:       d.Stock,
		AITags:      d.Tags,
		Location:    d.Location,
	}, nil
}

// BusinessDraft is the business form.
type BusinessDraft struct {
	Location     *model.Coordinate
	Name         string
	Description  string
	Address      string
	ContactEmail string
	ContactPhone string
	CategoryID   int
}

// NewBusinessDraft returns an empty business form.
func NewBusinessDraft() *BusinessDraft {
	return &BusinessDraft{}
}

// BusinessDraftFrom seeds a draft from an existing business.
func BusinessDraftFrom(b model.Business) *BusinessDraft {
	return &BusinessDraft{
		Name:         b.Name,
		Description:  b.Description,
		Address:      b.Address,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
		CategoryID:   b.Category.ID(),
		Location:     copyCoordinate(b.Location),
	}
}

// Position implements Draft.
func (d *BusinessDraft) Position() *model.Coordinate { return d.Location }

// Text implements Draft.
func (d *BusinessDraft) Text() string { return d.Description }

// SetText implements Draft.
func (d *BusinessDraft) SetText(s string) { d.Description = s }

// Input implements Draft.
func (d *BusinessDraft) Input() (model.BusinessInput, error) {
	if strings.TrimSpace(d.Name) == "" {
		return model.BusinessInput{}, requiredField("name")
	}
	if d.ContactEmail != "" && !strings.Contains(d.ContactEmail, "@") {
		return model.BusinessInput{}, fmt.Errorf("%w: %q is not an email address", common.ErrInvalidInput, d.ContactEmail)
	}

	return model.BusinessInput{
		Name:         strings.TrimSpace(d.Name),
		Description:  d.Description,
		Address:      d.Address,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Category:     categoryRef(d.CategoryID),
		Location:     d.Location,
	}, nil
}

func requiredField(name string) error {
	return fmt.Errorf("%w: %s is required", common.ErrInvalidInput, name)
}

func categoryRef(id int) model.CategoryRef {
	if id <= 0 {
		return model.CategoryRef{}
	}
	return model.CategoryID(id)
}

func copyCoordinate(c *model.Coordinate) *model.Coordinate {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
