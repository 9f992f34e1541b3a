package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceLocationSavedAddress(t *testing.T) {
	loc, err := NewServiceLocation(LocationSaved, "", "")
	require.NoError(t, err)
	assert.Equal(t, LocationSaved, loc.Option)
	assert.Empty(t, loc.Street)
	assert.Empty(t, loc.City)
	assert.False(t, loc.IsCustom())
}

func TestNewServiceLocationCustomAddress(t *testing.T) {
	loc, err := NewServiceLocation(LocationCustom, "12 Rainier Ave", "Seattle")
	require.NoError(t, err)
	assert.True(t, loc.IsCustom())
	assert.Equal(t, "12 Rainier Ave", loc.Street)
	assert.Equal(t, "Seattle", loc.City)
}

func TestNewServiceLocationCustomRequiresBothFields(t *testing.T) {
	_, err := NewServiceLocation(LocationCustom, "", "Seattle")
	assert.ErrorIs(t, err, ErrStreetRequired)

	_, err = NewServiceLocation(LocationCustom, "12 Rainier Ave", "")
	assert.ErrorIs(t, err, ErrCityRequired)
}

func TestNewServiceLocationUnknownOption(t *testing.T) {
	_, err := NewServiceLocation("office", "12 Rainier Ave", "Seattle")
	assert.ErrorIs(t, err, ErrUnknownLocationOption)
}

func TestServiceLocationValidate(t *testing.T) {
	assert.NoError(t, ServiceLocation{Option: LocationSaved}.Validate())
	assert.Error(t, ServiceLocation{Option: LocationCustom}.Validate())
	assert.Error(t, ServiceLocation{Option: "office"}.Validate())
}
