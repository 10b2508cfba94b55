// Package share builds the outbound WhatsApp links used to hand a bill or
// statement to a customer. One-way export: no delivery confirmation.
package share

import (
	"net/url"
	"strings"
)

// Digits strips every non-digit character from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink returns a wa.me URL that opens a chat with the given phone
// number and the message prefilled.
func WhatsAppLink(phone, text string) string {
	return "https://wa.me/" + Digits(phone) + "?text=" + url.QueryEscape(text)
}
