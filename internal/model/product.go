package model

import (
	"fmt"
	"strings"
	"time"
)

// Condition is the state a product is sold in.
type Condition string

const (
	// ConditionNew is a brand new item.
	ConditionNew Condition = "NEW"
	// ConditionUsed is a second-hand item.
	ConditionUsed Condition = "USED"
	// ConditionRefurbished is a refurbished item.
	ConditionRefurbished Condition = "REFURB"
)

// Label returns the human readable condition.
func (c Condition) Label() string {
	switch c {
	case ConditionNew:
		return "Brand New"
	case ConditionUsed:
		return "Used"
	case ConditionRefurbished:
		return "Refurbished"
	default:
		return string(c)
	}
}

// ParseCondition accepts NEW, USED or REFURB in any case.
func ParseCondition(s string) (Condition, error) {
	switch c := Condition(strings.ToUpper(strings.TrimSpace(s))); c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return c, nil
	default:
		return "", fmt.Errorf("unknown condition %q (want NEW, USED or REFURB)", s)
	}
}

// Product is an item for sale.
type Product struct {
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	Price       *Amount     `json:"price"`
	Location    *Coordinate `json:"location"`
	Business    *Business   `json:"business,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Condition   Condition   `json:"condition"`
	AITags      []string    `json:"ai_tags,omitempty"`
	Category    CategoryRef `json:"category"`
	ID          int         `json:"id,omitempty"`
	Stock       int         `json:"stock"`
}

// ListingID implements Listing.
func (p Product) ListingID() int { return p.ID }

// Kind implements Listing.
func (p Product) Kind() Kind { return KindProduct }

// DisplayName implements Listing.
func (p Product) DisplayName() string { return p.Name }

// Summary implements Listing.
func (p Product) Summary() string { return p.Description }

// CategoryName implements Listing.
func (p Product) CategoryName() (string, bool) { return categoryName(p.Category) }

// EffectivePrice implements Listing.
func (p Product) EffectivePrice() (float64, bool) {
	if p.Price == nil {
		return 0, false
	}
	return p.Price.Float(), true
}

// PriceLabel renders "KES 1,500", or "Price on request" when unpriced.
func (p Product) PriceLabel() string {
	if p.Price == nil {
		return "Price on request"
	}
	return p.Price.String()
}

// Position implements Listing.
func (p Product) Position() (Coordinate, bool) { return position(p.Location) }

// CategoryRef implements Categorized.
func (p *Product) CategoryRef() CategoryRef { return p.Category }

// SetCategoryRef implements Categorized.
func (p *Product) SetCategoryRef(ref CategoryRef) { p.Category = ref }
