// Package model defines the marketplace entities exchanged with the storefront API.
package model

// Kind names a resource collection on the API.
type Kind string

const (
	// KindBusiness is the businesses collection.
	KindBusiness Kind = "businesses"
	// KindProduct is the products collection.
	KindProduct Kind = "products"
	// KindService is the services collection.
	KindService Kind = "services"
	// KindCategory is the categories collection.
	KindCategory Kind = "categories"
)

// ListingKinds are the kinds a user can browse.
var ListingKinds = []Kind{KindService, KindBusiness, KindProduct}

// Singular returns the kind's singular noun ("service").
func (k Kind) Singular() string {
	switch k {
	case KindBusiness:
		return "business"
	case KindProduct:
		return "product"
	case KindService:
		return "service"
	case KindCategory:
		return "category"
	default:
		return string(k)
	}
}

// ParseKind accepts the plural or singular form of a listing kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindBusiness, KindProduct, KindService, KindCategory} {
		if s == string(k) || s == k.Singular() {
			return k, true
		}
	}
	return "", false
}

// Listing is the view of a business, product or service that the filter
// pipeline and the renderers work with.
type Listing interface {
	ListingID() int
	Kind() Kind
	// DisplayName is the name of a business or product, or a service title.
	DisplayName() string
	Summary() string
	// CategoryName is the resolved category display name, false when the
	// listing has no category or the category could not be resolved.
	CategoryName() (string, bool)
	// EffectivePrice is the price used for range filtering.
	EffectivePrice() (float64, bool)
	Position() (Coordinate, bool)
}

// Categorized is implemented by listings whose category reference the
// fetcher normalises.
type Categorized interface {
	CategoryRef() CategoryRef
	SetCategoryRef(CategoryRef)
}

// PriceText renders a listing's price for tables and detail views. Listings
// without a price, such as businesses, render as "".
func PriceText(l Listing) string {
	if p, ok := l.(interface{ PriceLabel() string }); ok {
		return p.PriceLabel()
	}
	return ""
}

func categoryName(ref CategoryRef) (string, bool) {
	if !ref.Resolved() {
		return "", false
	}
	return ref.Name(), true
}

func position(c *Coordinate) (Coordinate, bool) {
	if c == nil {
		return Coordinate{}, false
	}
	return *c, true
}
