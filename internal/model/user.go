package model

import "encoding/json"

// UserType is the role a marketplace account was registered with.
type UserType string

const (
	// UserCustomer browses and buys.
	UserCustomer UserType = "CUSTOMER"
	// UserBusiness owns businesses and sells products.
	UserBusiness UserType = "BUSINESS"
	// UserServiceProvider offers services.
	UserServiceProvider UserType = "SERVICE"
)

// User is a marketplace account as returned by the profile endpoint.
type User struct {
	Location *Coordinate `json:"location,omitempty"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	UserType UserType    `json:"user_type"`
	Phone    string      `json:"phone"`
	Address  string      `json:"address"`
	ID       int         `json:"id"`
}

// UnmarshalJSON decodes a profile. A location in a shape Coordinate does
// not understand is dropped so it cannot fail a login.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		Location json.RawMessage `json:"location"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User(raw.plain)
	if len(raw.Location) == 0 || string(raw.Location) == "null" {
		return nil
	}
	var c Coordinate
	if err := json.Unmarshal(raw.Location, &c); err == nil {
		u.Location = &c
	}
	return nil
}
