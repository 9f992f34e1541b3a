// File: services/booking/validation_test.go
package booking

import (
	"testing"
	"time"

	"pristine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() models.BookingDetailsInput {
	return models.BookingDetailsInput{
		BookingDate:   time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		BookingTime:   "10:30",
		Frequency:     models.FrequencyOnce,
		Phone:         "0781234567",
		AddressOption: models.LocationCustom,
		Street:        "12 Rainier Ave",
		City:          "Seattle",
	}
}

func TestValidateDetailsAcceptsValidInput(t *testing.T) {
	input := validDetails()
	assert.Nil(t, ValidateDetails(&input))
	assert.Equal(t, "10:30", input.BookingTime)
}

func TestValidateDetailsDefaultsFrequency(t *testing.T) {
	input := validDetails()
	input.Frequency = ""
	require.Nil(t, ValidateDetails(&input))
	assert.Equal(t, models.FrequencyOnce, input.Frequency)
}

func TestValidateDetailsResetsOutOfWindowTime(t *testing.T) {
	for _, tc := range []string{"06:00", "07:59", "20:00", "23:30"} {
		input := validDetails()
		input.BookingTime = tc

		verr := ValidateDetails(&input)
		require.NotNil(t, verr, "time %s must be rejected", tc)
		assert.Contains(t, verr.Fields, "bookingTime")
		require.Len(t, verr.Warnings, 1)
		assert.Contains(t, verr.Warnings[0], "reset to 08:00")
		// The input is corrected in place so a resubmission goes through.
		assert.Equal(t, "08:00", input.BookingTime)
	}
}

func TestValidateDetailsCorrectedInputPassesOnResubmit(t *testing.T) {
	input := validDetails()
	input.BookingTime = "22:00"
	require.NotNil(t, ValidateDetails(&input))
	assert.Nil(t, ValidateDetails(&input))
}

func TestValidateDetailsBoundaryTimes(t *testing.T) {
	input := validDetails()
	input.BookingTime = "08:00"
	assert.Nil(t, ValidateDetails(&input))

	input = validDetails()
	input.BookingTime = "19:59"
	assert.Nil(t, ValidateDetails(&input))
}

func TestValidateDetailsRejectsBadPhone(t *testing.T) {
	for _, tc := range []string{"", "12345", "12345678901", "07812345ab"} {
		input := validDetails()
		input.Phone = tc

		verr := ValidateDetails(&input)
		require.NotNil(t, verr, "phone %q must be rejected", tc)
		assert.Contains(t, verr.Fields, "phone")
	}
}

func TestValidateDetailsRejectsPastDate(t *testing.T) {
	input := validDetails()
	input.BookingDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	verr := ValidateDetails(&input)
	require.NotNil(t, verr)
	assert.Equal(t, "booking date cannot be in the past", verr.Fields["bookingDate"])
}

func TestValidateDetailsAcceptsToday(t *testing.T) {
	// "Today" is a local-zone boundary: a same-day booking must pass no
	// matter what UTC thinks the date is.
	input := validDetails()
	input.BookingDate = time.Now().Format("2006-01-02")
	assert.Nil(t, ValidateDetails(&input))
}

func TestValidateDetailsRequiresStreetAndCityForNewAddress(t *testing.T) {
	input := validDetails()
	input.Street = ""
	input.City = ""

	verr := ValidateDetails(&input)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "street")
	assert.Contains(t, verr.Fields, "city")
}

func TestValidateDetailsSavedAddressSkipsStreetAndCity(t *testing.T) {
	input := validDetails()
	input.AddressOption = models.LocationSaved
	input.Street = ""
	input.City = ""
	assert.Nil(t, ValidateDetails(&input))
}

func TestValidateDetailsRejectsUnknownAddressOption(t *testing.T) {
	input := validDetails()
	input.AddressOption = "office"

	verr := ValidateDetails(&input)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "addressOption")
}

func TestScheduledTimeCombinesDateAndTime(t *testing.T) {
	input := validDetails()
	input.BookingDate = "2026-09-15"
	input.BookingTime = "14:00"

	at, err := ScheduledTime(input)
	require.NoError(t, err)
	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.September, at.Month())
	assert.Equal(t, 15, at.Day())
	assert.Equal(t, 14, at.Hour())
}
