package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"karam/internal/domain"
	"karam/internal/pkg/validator"
)

type Service struct {
	sessions *SessionManager
	families FamilyReader
	bookings BookingStore
	cart     CartAdder
	notifier Notifier
}

func NewService(sessions *SessionManager, families FamilyReader, bookings BookingStore, cart CartAdder, notifier Notifier) *Service {
	return &Service{
		sessions: sessions,
		families: families,
		bookings: bookings,
		cart:     cart,
		notifier: notifier,
	}
}

// Start opens a booking session for the owner, replacing any session already
// in progress, and resolves the family/package snapshot from storage. When
// the records cannot be loaded the session keeps placeholder details so the
// visitor can carry on.
func (s *Service) Start(ctx context.Context, ownerKey string, familyID int64, packageType string) (SessionResponse, error) {
	pkgType, ok := domain.ParsePackageType(packageType)
	if !ok {
		return SessionResponse{}, ErrInvalidPackageType
	}

	sess := s.sessions.Start(ownerKey, familyID, pkgType)

	fam, err := s.families.GetByID(ctx, familyID)
	if err != nil {
		log.Printf("booking: family %d snapshot unavailable: %v", familyID, err)
		fam = &domain.HostFamily{ID: familyID, Name: FallbackFamilyName}
	}
	pkg, err := s.families.GetPackage(ctx, familyID, pkgType)
	if err != nil {
		log.Printf("booking: package %s for family %d unavailable: %v", pkgType, familyID, err)
		pkg = &domain.Package{
			FamilyID:       familyID,
			Type:           pkgType,
			PricePerPerson: pkgType.DefaultPrice(),
		}
	}
	// A session started after ours wins; its snapshot must not be clobbered
	// by this late resolution.
	s.sessions.AttachSnapshot(ownerKey, sess.ID, fam, pkg)

	return s.Session(ownerKey)
}

// Session returns the owner's current session view.
func (s *Service) Session(ownerKey string) (SessionResponse, error) {
	st, err := s.sessions.Snapshot(ownerKey)
	if err != nil {
		return SessionResponse{}, err
	}
	return toSessionResponse(st), nil
}

func (s *Service) AddGuest(ownerKey string) (SessionResponse, error) {
	if err := s.sessions.Update(ownerKey, func(sess *Session) {
		sess.Roster.AddGuest()
	}); err != nil {
		return SessionResponse{}, err
	}
	return s.Session(ownerKey)
}

func (s *Service) UpdateGuestField(ownerKey, guestID, field, value string) (SessionResponse, error) {
	f, ok := ParseGuestField(field)
	if !ok {
		return SessionResponse{}, ErrInvalidGuestField
	}
	if err := s.sessions.Update(ownerKey, func(sess *Session) {
		sess.Roster.UpdateField(guestID, f, value)
	}); err != nil {
		return SessionResponse{}, err
	}
	return s.Session(ownerKey)
}

func (s *Service) ToggleCommunication(ownerKey, guestID, method string, enabled bool) (SessionResponse, error) {
	m, ok := domain.ParseCommunicationMethod(method)
	if !ok {
		return SessionResponse{}, fmt.Errorf("%w: unknown communication method %q", ErrValidationFailed, method)
	}
	if err := s.sessions.Update(ownerKey, func(sess *Session) {
		sess.Roster.ToggleCommunicationMethod(guestID, m, enabled)
	}); err != nil {
		return SessionResponse{}, err
	}
	return s.Session(ownerKey)
}

func (s *Service) ToggleMedical(ownerKey, guestID, condition string, enabled bool) (SessionResponse, error) {
	if err := s.sessions.Update(ownerKey, func(sess *Session) {
		sess.Roster.ToggleMedicalCondition(guestID, condition, enabled)
	}); err != nil {
		return SessionResponse{}, err
	}
	return s.Session(ownerKey)
}

func (s *Service) RemoveGuest(ownerKey, guestID string) (SessionResponse, error) {
	if err := s.sessions.Update(ownerKey, func(sess *Session) {
		sess.Roster.RemoveGuest(guestID)
	}); err != nil {
		return SessionResponse{}, err
	}
	return s.Session(ownerKey)
}

func (s *Service) SetNotes(ownerKey, notes string) (SessionResponse, error) {
	if err := s.sessions.Update(ownerKey, func(sess *Session) {
		sess.Notes = notes
	}); err != nil {
		return SessionResponse{}, err
	}
	return s.Session(ownerKey)
}

// Close discards the owner's session without committing.
func (s *Service) Close(ownerKey string) {
	s.sessions.Close(ownerKey)
}

// ProceedToPayment commits the session: validates the roster, persists the
// booking, appends it to the owner's cart and clears the session. On a
// persistence failure the session stays active so nothing typed is lost.
func (s *Service) ProceedToPayment(ctx context.Context, ownerKey string, userID int64, notes string) (*domain.Booking, error) {
	st, err := s.sessions.Snapshot(ownerKey)
	if err != nil {
		return nil, err
	}
	if notes != "" {
		st.Notes = notes
	}

	complete := len(st.Guests) > 0
	for _, g := range st.Guests {
		if !g.Complete() {
			complete = false
			break
		}
	}
	if !complete {
		return nil, ErrValidationFailed
	}

	guestsData, err := json.Marshal(st.Guests)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	b := &domain.Booking{
		FamilyID:           st.FamilyID,
		UserID:             userID,
		PackageType:        st.PackageType,
		GuestCount:         len(st.Guests),
		TotalPrice:         round2(st.Pricing.Total),
		DiscountPercentage: st.Pricing.DiscountPercent,
		Notes:              st.Notes,
		Status:             domain.BookingPending,
		PaymentStatus:      domain.PaymentUnpaid,
		GuestsData:         string(guestsData),
	}
	if fields := validator.Validate(b); fields != nil {
		return nil, &InvalidBookingError{Fields: fields}
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	item := domain.CartItem{
		ID:              b.ID,
		Type:            domain.ItemBooking,
		Name:            fmt.Sprintf("%s, %d guest(s)", st.FamilyName, b.GuestCount),
		Price:           b.TotalPrice,
		GuestCount:      b.GuestCount,
		DiscountPercent: b.DiscountPercentage,
	}
	if st.Family != nil {
		item.Image = st.Family.Image
		item.City = string(st.Family.City)
	}
	// The booking row is the source of truth once created; a cart write
	// failure must not roll it back or resurface as a checkout error.
	if err := s.cart.Add(ctx, ownerKey, item); err != nil {
		log.Printf("booking: cart append for booking %d failed: %v", b.ID, err)
	}

	if ownerID, err := s.families.GetOwnerID(ctx, st.FamilyID); err == nil && ownerID > 0 {
		s.notifier.BookingCreated(ctx, ownerID, b, st.FamilyName)
	}

	s.sessions.Clear(ownerKey, st.ID)
	return b, nil
}

// MyBookings lists the authenticated user's bookings, newest first.
func (s *Service) MyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.GetByUserID(ctx, userID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
