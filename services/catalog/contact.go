package catalog

import (
	"strings"

	"almadina/models"
)

const (
	DefaultMessagingBaseURL = "https://wa.me/"
	DefaultDialScheme       = "tel:"

	messagingFragment = "wa.me"
)

// ContactBinder points the page's messaging and dial links at the
// catalog's contact numbers. Binding is idempotent.
type ContactBinder struct {
	MessagingBaseURL string
	DialScheme       string
}

func NewContactBinder(messagingBaseURL string) ContactBinder {
	if messagingBaseURL == "" {
		messagingBaseURL = DefaultMessagingBaseURL
	}
	return ContactBinder{MessagingBaseURL: messagingBaseURL, DialScheme: DefaultDialScheme}
}

// MessagingHref is the link for a WhatsApp number; a leading "+" is dropped.
func (b ContactBinder) MessagingHref(whatsapp string) string {
	return b.MessagingBaseURL + strings.TrimPrefix(whatsapp, "+")
}

// DialHref is the link for a phone number, used verbatim.
func (b ContactBinder) DialHref(phone string) string {
	return b.DialScheme + phone
}

// Bind rewrites the links on s and returns how many of each kind changed.
func (b ContactBinder) Bind(s Surface, contact models.Contact) (messaging, dial int) {
	messaging = s.RewriteLinks(messagingFragment, b.MessagingHref(contact.WhatsApp))
	dial = s.RewriteLinks(b.DialScheme, b.DialHref(contact.Phone))
	return messaging, dial
}
