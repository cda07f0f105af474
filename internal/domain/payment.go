package domain

import (
	"regexp"
	"strings"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)
)

// CardDetails carries the payment card fields submitted at checkout. No
// charge is made against the card; the fields are validated for shape only.
type CardDetails struct {
	HolderName string `json:"holder_name"`
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
}

// Validate checks the card number and expiry format. The number must be 13
// to 19 digits after stripping whitespace; the expiry must be MM/YY or
// MM/YYYY with a month of 01 through 12. Card details are validated before
// any store access so an invalid card never opens a transaction.
func (c CardDetails) Validate() error {
	number := strings.Join(strings.Fields(c.Number), "")
	if !cardNumberPattern.MatchString(number) {
		return &InvalidPaymentMethodError{Reason: "card number must be 13 to 19 digits"}
	}
	if !cardExpiryPattern.MatchString(c.Expiry) {
		return &InvalidPaymentMethodError{Reason: "expiry must be MM/YY or MM/YYYY"}
	}
	return nil
}
