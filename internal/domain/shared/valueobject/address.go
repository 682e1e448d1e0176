package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Address is an Indian postal address. It is immutable.
type Address struct {
	line    string
	city    string
	state   string
	pincode string
}

// NewAddress validates and builds an address. All four parts are required;
// the PIN code must be six digits and cannot start with zero.
func NewAddress(line, city, state, pincode string) (Address, error) {
	line = strings.TrimSpace(line)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	pincode = strings.TrimSpace(pincode)

	switch {
	case line == "":
		return Address{}, fmt.Errorf("address cannot be empty")
	case len(line) > 500:
		return Address{}, fmt.Errorf("address cannot exceed 500 characters")
	case city == "":
		return Address{}, fmt.Errorf("city cannot be empty")
	case len(city) > 100:
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	case state == "":
		return Address{}, fmt.Errorf("state cannot be empty")
	case len(state) > 100:
		return Address{}, fmt.Errorf("state cannot exceed 100 characters")
	}
	if !IsValidPincode(pincode) {
		return Address{}, fmt.Errorf("pincode must be a 6 digit Indian PIN code")
	}

	return Address{line: line, city: city, state: state, pincode: pincode}, nil
}

// RestoreAddress rebuilds a stored address without validating it.
func RestoreAddress(line, city, state, pincode string) Address {
	return Address{line: line, city: city, state: state, pincode: pincode}
}

// IsValidPincode reports whether s is a well-formed PIN code
func IsValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}

func (a Address) Line() string    { return a.line }
func (a Address) City() string    { return a.city }
func (a Address) State() string   { return a.state }
func (a Address) Pincode() string { return a.pincode }

// IsEmpty returns true if no part is set
func (a Address) IsEmpty() bool {
	return a.line == "" && a.city == "" && a.state == "" && a.pincode == ""
}

// String formats the address on a single line: "line, city, state - pincode"
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s - %s", a.line, a.city, a.state, a.pincode)
}

// Equals compares all parts
func (a Address) Equals(other Address) bool {
	return a == other
}
