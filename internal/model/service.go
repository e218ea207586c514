package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// DefaultServiceAreaKm applies when a service does not state its area.
const DefaultServiceAreaKm = 20

// Service is a skill offered by a provider, billed hourly or at a fixed price.
// Exactly one of HourlyRate and FixedPrice is expected to be set.
type Service struct {
	CreatedAt     time.Time   `json:"created_at,omitempty"`
	HourlyRate    *Amount     `json:"hourly_rate"`
	FixedPrice    *Amount     `json:"fixed_price"`
	ServiceArea   *Kilometers `json:"service_area"`
	Location      *Coordinate `json:"location"`
	Provider      *User       `json:"provider,omitempty"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	AIDescription string      `json:"ai_description,omitempty"`
	Category      CategoryRef `json:"category"`
	ID            int         `json:"id,omitempty"`
}

// ListingID implements Listing.
func (s Service) ListingID() int { return s.ID }

// Kind implements Listing.
func (s Service) Kind() Kind { return KindService }

// DisplayName implements Listing.
func (s Service) DisplayName() string { return s.Title }

// Summary implements Listing.
func (s Service) Summary() string { return s.Description }

// CategoryName implements Listing.
func (s Service) CategoryName() (string, bool) { return categoryName(s.Category) }

// EffectivePrice is the hourly rate when present, otherwise the fixed price.
func (s Service) EffectivePrice() (float64, bool) {
	if s.HourlyRate != nil {
		return s.HourlyRate.Float(), true
	}
	if s.FixedPrice != nil {
		return s.FixedPrice.Float(), true
	}
	return 0, false
}

// Position implements Listing.
func (s Service) Position() (Coordinate, bool) { return position(s.Location) }

// AreaKm returns the service radius, DefaultServiceAreaKm when unset.
func (s Service) AreaKm() float64 {
	if s.ServiceArea == nil {
		return DefaultServiceAreaKm
	}
	return float64(*s.ServiceArea)
}

// PriceLabel renders "KES 500/hr" or "KES 3,000 fixed".
func (s Service) PriceLabel() string {
	switch {
	case s.HourlyRate != nil:
		return s.HourlyRate.String() + "/hr"
	case s.FixedPrice != nil:
		return s.FixedPrice.String() + " fixed"
	default:
		return "Price on request"
	}
}

// CategoryRef implements Categorized.
func (s *Service) CategoryRef() CategoryRef { return s.Category }

// SetCategoryRef implements Categorized.
func (s *Service) SetCategoryRef(ref CategoryRef) { s.Category = ref }

// Kilometers is a distance that may arrive as a number, a numeric string,
// or a geometry object the client does not interpret.
type Kilometers float64

// UnmarshalJSON leaves the value untouched for null and non-numeric shapes.
func (k *Kilometers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || data[0] == '{' {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		*k = Kilometers(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*k = Kilometers(v)
	return nil
}
