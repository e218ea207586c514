package model

// BusinessInput is the body of a business create or update.
type BusinessInput struct {
	Location     *Coordinate `json:"location"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Address      string      `json:"address"`
	ContactEmail string      `json:"contact_email"`
	ContactPhone string      `json:"contact_phone"`
	Category     CategoryRef `json:"category"`
}

// ProductInput is the body of a product create or update.
type ProductInput struct {
	Price       *Amount     `json:"price"`
	Location    *Coordinate `json:"location"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Condition   Condition   `json:"condition"`
	AITags      []string    `json:"ai_tags,omitempty"`
	Category    CategoryRef `json:"category"`
	Stock       int         `json:"stock"`
}

// ServiceInput is the body of a service create or update. Only one of
// HourlyRate and FixedPrice is populated.
type ServiceInput struct {
	HourlyRate  *Amount     `json:"hourly_rate,omitempty"`
	FixedPrice  *Amount     `json:"fixed_price,omitempty"`
	Location    *Coordinate `json:"location"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    CategoryRef `json:"category"`
	ServiceArea float64     `json:"service_area"`
}

// Credentials are the username and password sent to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Tokens is the login response.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Registration is the body of the register endpoint.
type Registration struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	UserType UserType `json:"user_type"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
}
