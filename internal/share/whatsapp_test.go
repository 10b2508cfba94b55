package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	assert.Equal(t, "919876543210", Digits("+91 98765-43210"))
	assert.Equal(t, "", Digits("no digits here"))
	assert.Equal(t, "12345", Digits("12345"))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+91 98765-43210", "*BILL GENERATED: INV-1*\nThank you!")
	assert.Equal(t, "https://wa.me/919876543210?text=%2ABILL+GENERATED%3A+INV-1%2A%0AThank+you%21", link)
}
