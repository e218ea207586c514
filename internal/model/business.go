package model

import "time"

// Business is a shop or workshop listed in the directory.
type Business struct {
	CreatedAt    time.Time   `json:"created_at,omitempty"`
	Location     *Coordinate `json:"location"`
	Owner        *User       `json:"owner,omitempty"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Address      string      `json:"address"`
	ContactEmail string      `json:"contact_email"`
	ContactPhone string      `json:"contact_phone"`
	Category     CategoryRef `json:"category"`
	ID           int         `json:"id,omitempty"`
	Verified     bool        `json:"verified"`
}

// ListingID implements Listing.
func (b Business) ListingID() int { return b.ID }

// Kind implements Listing.
func (b Business) Kind() Kind { return KindBusiness }

// DisplayName implements Listing.
func (b Business) DisplayName() string { return b.Name }

// Summary implements Listing.
func (b Business) Summary() string { return b.Description }

// CategoryName implements Listing.
func (b Business) CategoryName() (string, bool) { return categoryName(b.Category) }

// EffectivePrice implements Listing. Businesses carry no price.
func (b Business) EffectivePrice() (float64, bool) { return 0, false }

// Position implements Listing.
func (b Business) Position() (Coordinate, bool) { return position(b.Location) }

// CategoryRef implements Categorized.
func (b *Business) CategoryRef() CategoryRef { return b.Category }

// SetCategoryRef implements Categorized.
func (b *Business) SetCategoryRef(ref CategoryRef) { b.Category = ref }
