package domain

import "strings"

type CommunicationMethod string

const (
	CommPhone    CommunicationMethod = "phone"
	CommWhatsApp CommunicationMethod = "whatsapp"
	CommTelegram CommunicationMethod = "telegram"
)

func ParseCommunicationMethod(s string) (CommunicationMethod, bool) {
	switch CommunicationMethod(s) {
	case CommPhone, CommWhatsApp, CommTelegram:
		return CommunicationMethod(s), true
	}
	return "", false
}

// Guest is one member of a group booking. Everything except full name,
// phone number and at least one communication method is optional.
type Guest struct {
	ID                   string                `json:"id"`
	FullName             string                `json:"full_name"`
	PassportNumber       string                `json:"passport_number,omitempty"`
	VisaNumber           string                `json:"visa_number,omitempty"`
	PhoneNumber          string                `json:"phone_number"`
	CommunicationMethods []CommunicationMethod `json:"communication_methods"`
	Allergies            string                `json:"allergies,omitempty"`
	// MedicalConditions mixes checkbox tags and free text into one
	// comma-joined string, matching the persisted guests_data shape.
	MedicalConditions   string `json:"medical_conditions,omitempty"`
	DietaryRestrictions string `json:"dietary_restrictions,omitempty"`
}

// Complete reports whether the guest carries the minimum required contact
// information for checkout.
func (g Guest) Complete() bool {
	return strings.TrimSpace(g.FullName) != "" &&
		strings.TrimSpace(g.PhoneNumber) != "" &&
		len(g.CommunicationMethods) > 0
}

// HasCommunicationMethod reports set membership without assuming order.
func (g Guest) HasCommunicationMethod(m CommunicationMethod) bool {
	for _, have := range g.CommunicationMethods {
		if have == m {
			return true
		}
	}
	return false
}
