package checkout

import (
	"regexp"
	"strings"
)

// Form is the checkout form as submitted by the storefront. Field names
// match the form payload; shipping fields are only read when the shopper
// unchecks "ship to the billing address".
type Form struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country,omitempty"`

	ShippingSame      bool   `json:"shipping_same"`
	ShippingFirstName string `json:"shipping_first_name,omitempty"`
	ShippingLastName  string `json:"shipping_last_name,omitempty"`
	ShippingAddress1  string `json:"shipping_address_1,omitempty"`
	ShippingCity      string `json:"shipping_city,omitempty"`
	ShippingPostcode  string `json:"shipping_postcode,omitempty"`

	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postcodePattern = regexp.MustCompile(`^\d{2}-\d{3}$`)
)

var paymentMethods = map[string]struct{}{
	"bacs": {},
	"cod":  {},
	"card": {},
}

// Validate checks the form field by field and returns a map of field name to
// error message; an empty map means the form is valid. Messages are the
// storefront's Polish copy. The shipping block is required-only: its
// postcode format is deliberately not checked.
func Validate(form Form) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.Email) == "" {
		errs["email"] = "Podaj adres email"
	} else if !emailPattern.MatchString(form.Email) {
		errs["email"] = "Nieprawidłowy email"
	}
	if strings.TrimSpace(form.FirstName) == "" {
		errs["first_name"] = "Podaj imię"
	}
	if strings.TrimSpace(form.LastName) == "" {
		errs["last_name"] = "Podaj nazwisko"
	}
	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Podaj numer telefonu"
	}
	if strings.TrimSpace(form.Address1) == "" {
		errs["address_1"] = "Podaj adres"
	}
	if strings.TrimSpace(form.City) == "" {
		errs["city"] = "Podaj miasto"
	}
	if strings.TrimSpace(form.Postcode) == "" {
		errs["postcode"] = "Podaj kod pocztowy"
	} else if !postcodePattern.MatchString(form.Postcode) {
		errs["postcode"] = "Format: 00-000"
	}

	if !form.ShippingSame {
		if strings.TrimSpace(form.ShippingFirstName) == "" {
			errs["shipping_first_name"] = "Podaj imię"
		}
		if strings.TrimSpace(form.ShippingLastName) == "" {
			errs["shipping_last_name"] = "Podaj nazwisko"
		}
		if strings.TrimSpace(form.ShippingAddress1) == "" {
			errs["shipping_address_1"] = "Podaj adres"
		}
		if strings.TrimSpace(form.ShippingCity) == "" {
			errs["shipping_city"] = "Podaj miasto"
		}
		if strings.TrimSpace(form.ShippingPostcode) == "" {
			errs["shipping_postcode"] = "Podaj kod pocztowy"
		}
	}

	if form.PaymentMethod != "" {
		if _, ok := paymentMethods[form.PaymentMethod]; !ok {
			errs["payment_method"] = "Nieobsługiwana metoda płatności"
		}
	}

	return errs
}
