// File: services/booking/validation.go
package booking

import (
	"regexp"
	"time"

	"pristine/models"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Business-hours window: bookings start at 08:00 or later and before 20:00.
	openingHour = 8
	closingHour = 20

	// safeBookingTime is what an out-of-window time is rewritten to.
	safeBookingTime = "08:00"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		// Parse and compare in the server's local zone, the same zone
		// ScheduledTime builds the final timestamp in.
		d, err := time.ParseInLocation(dateLayout, fl.Field().String(), time.Local)
		if err != nil {
			return false
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		return !d.Before(today)
	})

	v.RegisterValidation("businesshours", func(fl validator.FieldLevel) bool {
		t, err := time.Parse(timeLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return t.Hour() >= openingHour && t.Hour() < closingHour
	})

	return v
}

// fieldMessages maps schema violations to the messages surfaced on the form.
var fieldMessages = map[string]string{
	"BookingDate.required":      "booking date is required",
	"BookingDate.futuredate":    "booking date cannot be in the past",
	"BookingTime.required":      "booking time is required",
	"BookingTime.businesshours": "booking time must be between 08:00 and 20:00",
	"Phone.required":            "contact phone is required",
	"Phone.phone10":             "phone must be exactly 10 digits",
	"Frequency.oneof":           "frequency must be one of once, weekly, biweekly or monthly",
	"AddressOption.required":    "address option is required",
	"AddressOption.oneof":       "address option must be my-address or new-address",
	"Street.required_if":        "street is required for a new address",
	"City.required_if":          "city is required for a new address",
}

var jsonFieldNames = map[string]string{
	"BookingDate":   "bookingDate",
	"BookingTime":   "bookingTime",
	"Phone":         "phone",
	"Frequency":     "frequency",
	"AddressOption": "addressOption",
	"Street":        "street",
	"City":          "city",
}

// ValidateDetails checks the booking-details form and applies the
// input-correction policy: an out-of-window (or unparseable) time is rewritten
// to 08:00 in place and reported both as a field error and a user-visible
// warning. A nil return means the input is valid as it now stands.
func ValidateDetails(input *models.BookingDetailsInput) *ValidationError {
	fields := map[string]string{}
	var warnings []string

	if input.Frequency == "" {
		input.Frequency = models.FrequencyOnce
	}

	// Time correction runs before the declarative rules so the schema sees
	// the corrected value; the rejection is recorded here.
	if input.BookingTime != "" {
		t, err := time.Parse(timeLayout, input.BookingTime)
		if err != nil || t.Hour() < openingHour || t.Hour() >= closingHour {
			input.BookingTime = safeBookingTime
			fields["bookingTime"] = fieldMessages["BookingTime.businesshours"]
			warnings = append(warnings, "Booking time must be between 08:00 and 20:00; it has been reset to 08:00.")
		}
	}

	if err := validate.Struct(input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				name := jsonFieldNames[fe.StructField()]
				if name == "" {
					name = fe.StructField()
				}
				if _, seen := fields[name]; seen {
					continue
				}
				msg := fieldMessages[fe.StructField()+"."+fe.Tag()]
				if msg == "" {
					msg = "invalid value"
				}
				fields[name] = msg
			}
		} else {
			fields["form"] = "invalid booking details"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields, Warnings: warnings}
}

// ScheduledTime combines the validated date and time fields into a single
// timestamp in the server's local zone.
func ScheduledTime(input models.BookingDetailsInput) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, input.BookingDate+" "+input.BookingTime, time.Local)
}
