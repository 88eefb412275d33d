package booking

import (
	"time"

	"karam/internal/domain"
)

type StartSessionRequest struct {
	FamilyID    int64  `json:"family_id" binding:"required"`
	PackageType string `json:"package_type" binding:"required"`
}

type UpdateGuestRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type ToggleCommunicationRequest struct {
	Method  string `json:"method" binding:"required"`
	Enabled bool   `json:"enabled"`
}

type ToggleMedicalRequest struct {
	Condition string `json:"condition" binding:"required"`
	Enabled   bool   `json:"enabled"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type CheckoutRequest struct {
	Notes string `json:"notes"`
}

// SessionResponse is the full session view the booking screen renders from.
type SessionResponse struct {
	SessionID   int64                  `json:"session_id"`
	FamilyID    int64                  `json:"family_id"`
	FamilyName  string                 `json:"family_name"`
	PackageType domain.PackageType     `json:"package_type"`
	PackageName string                 `json:"package_name,omitempty"`
	StartedAt   time.Time              `json:"started_at"`
	Notes       string                 `json:"notes,omitempty"`
	Guests      []domain.Guest         `json:"guests"`
	Pricing     domain.PricingSnapshot `json:"pricing"`
}

func toSessionResponse(st sessionState) SessionResponse {
	resp := SessionResponse{
		SessionID:   st.ID,
		FamilyID:    st.FamilyID,
		FamilyName:  st.FamilyName,
		PackageType: st.PackageType,
		StartedAt:   st.StartedAt,
		Notes:       st.Notes,
		Guests:      st.Guests,
		Pricing:     st.Pricing,
	}
	if st.Package != nil {
		resp.PackageName = st.Package.Name
	}
	return resp
}
