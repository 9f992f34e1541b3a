package models

import "errors"

// LocationOption discriminates the two service-location variants.
type LocationOption string

const (
	// LocationSaved means "clean at the address saved on my profile".
	LocationSaved LocationOption = "my-address"
	// LocationCustom means an explicit street/city override for this booking.
	LocationCustom LocationOption = "new-address"
)

var (
	ErrUnknownLocationOption = errors.New("unknown address option")
	ErrStreetRequired        = errors.New("street is required for a new address")
	ErrCityRequired          = errors.New("city is required for a new address")
)

// ServiceLocation is a closed variant: either the customer's saved address or
// an explicit street/city override. Go has no sum types, so the invariant
// (street/city present exactly when the option is LocationCustom) is enforced
// by the constructors and Validate rather than by the type system.
type ServiceLocation struct {
	Option LocationOption `bson:"option" json:"addressOption"`
	Street string         `bson:"street,omitempty" json:"street,omitempty"`
	City   string         `bson:"city,omitempty" json:"city,omitempty"`
}

// SavedAddressLocation builds the "my saved address" variant.
func SavedAddressLocation() ServiceLocation {
	return ServiceLocation{Option: LocationSaved}
}

// CustomAddressLocation builds the explicit-address variant. Both fields are
// mandatory for this variant.
func CustomAddressLocation(street, city string) (ServiceLocation, error) {
	loc := ServiceLocation{Option: LocationCustom, Street: street, City: city}
	if err := loc.Validate(); err != nil {
		return ServiceLocation{}, err
	}
	return loc, nil
}

// NewServiceLocation resolves the wire representation (flat option + optional
// street/city) into a valid variant.
func NewServiceLocation(option LocationOption, street, city string) (ServiceLocation, error) {
	switch option {
	case LocationSaved:
		return SavedAddressLocation(), nil
	case LocationCustom:
		return CustomAddressLocation(street, city)
	default:
		return ServiceLocation{}, ErrUnknownLocationOption
	}
}

// IsCustom reports whether this is the explicit-address variant.
func (l ServiceLocation) IsCustom() bool {
	return l.Option == LocationCustom
}

// Validate checks the variant invariant.
func (l ServiceLocation) Validate() error {
	switch l.Option {
	case LocationSaved:
		return nil
	case LocationCustom:
		if l.Street == "" {
			return ErrStreetRequired
		}
		if l.City == "" {
			return ErrCityRequired
		}
		return nil
	default:
		return ErrUnknownLocationOption
	}
}
