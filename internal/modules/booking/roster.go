package booking

import (
	"strings"

	"github.com/google/uuid"

	"karam/internal/domain"
)

type GuestField string

const (
	FieldFullName            GuestField = "full_name"
	FieldPassportNumber      GuestField = "passport_number"
	FieldVisaNumber          GuestField = "visa_number"
	FieldPhoneNumber         GuestField = "phone_number"
	FieldAllergies           GuestField = "allergies"
	FieldMedicalConditions   GuestField = "medical_conditions"
	FieldDietaryRestrictions GuestField = "dietary_restrictions"
)

func ParseGuestField(s string) (GuestField, bool) {
	switch GuestField(s) {
	case FieldFullName, FieldPassportNumber, FieldVisaNumber, FieldPhoneNumber,
		FieldAllergies, FieldMedicalConditions, FieldDietaryRestrictions:
		return GuestField(s), true
	}
	return "", false
}

// Roster holds the guest list of one in-progress booking session. It is not
// safe for concurrent use on its own; the session manager serializes access.
type Roster struct {
	guests []*domain.Guest
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) Count() int { return len(r.guests) }

// Guests returns a value copy of the roster, in insertion order.
func (r *Roster) Guests() []domain.Guest {
	out := make([]domain.Guest, 0, len(r.guests))
	for _, g := range r.guests {
		out = append(out, *g)
	}
	return out
}

// AddGuest appends an empty guest and returns it.
func (r *Roster) AddGuest() *domain.Guest {
	g := &domain.Guest{
		ID:                   uuid.NewString(),
		CommunicationMethods: []domain.CommunicationMethod{},
	}
	r.guests = append(r.guests, g)
	return g
}

func (r *Roster) find(id string) *domain.Guest {
	for _, g := range r.guests {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// UpdateField overwrites one field on the guest with the given id. Updates
// addressed to a guest that is no longer on the roster are dropped silently,
// keyboard input may race with a remove.
func (r *Roster) UpdateField(id string, field GuestField, value string) {
	g := r.find(id)
	if g == nil {
		return
	}
	switch field {
	case FieldFullName:
		g.FullName = value
	case FieldPassportNumber:
		g.PassportNumber = value
	case FieldVisaNumber:
		g.VisaNumber = value
	case FieldPhoneNumber:
		g.PhoneNumber = value
	case FieldAllergies:
		g.Allergies = value
	case FieldMedicalConditions:
		g.MedicalConditions = value
	case FieldDietaryRestrictions:
		g.DietaryRestrictions = value
	}
}

// ToggleCommunicationMethod adds or removes a preferred contact channel.
// Toggling an already-present method on, or an absent one off, is a no-op.
func (r *Roster) ToggleCommunicationMethod(id string, m domain.CommunicationMethod, enabled bool) {
	g := r.find(id)
	if g == nil {
		return
	}
	if enabled {
		if !g.HasCommunicationMethod(m) {
			g.CommunicationMethods = append(g.CommunicationMethods, m)
		}
		return
	}
	kept := g.CommunicationMethods[:0]
	for _, have := range g.CommunicationMethods {
		if have != m {
			kept = append(kept, have)
		}
	}
	g.CommunicationMethods = kept
}

// ToggleMedicalCondition merges a checkbox tag into the guest's comma-joined
// medical conditions string, or removes it. Free text previously typed into
// the field survives as extra entries.
func (r *Roster) ToggleMedicalCondition(id, condition string, enabled bool) {
	g := r.find(id)
	if g == nil {
		return
	}
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return
	}
	var entries []string
	for _, e := range strings.Split(g.MedicalConditions, ",") {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	present := false
	kept := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		if strings.EqualFold(e, condition) {
			present = true
			if !enabled {
				continue
			}
		}
		kept = append(kept, e)
	}
	if enabled && !present {
		kept = append(kept, condition)
	}
	g.MedicalConditions = strings.Join(kept, ",")
}

func (r *Roster) RemoveGuest(id string) {
	for i, g := range r.guests {
		if g.ID == id {
			r.guests = append(r.guests[:i], r.guests[i+1:]...)
			return
		}
	}
}

// IsValid reports whether the roster is non-empty and every guest carries the
// required contact information.
func (r *Roster) IsValid() bool {
	if len(r.guests) == 0 {
		return false
	}
	for _, g := range r.guests {
		if !g.Complete() {
			return false
		}
	}
	return true
}
