package notify

import (
	"context"
	"fmt"
	"log"

	"karam/internal/domain"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notifID int64) error
}

// Service persists notifications and pushes them to live connections.
// Both halves are best effort from the caller's point of view: a booking
// never fails because its notification did.
type Service struct {
	store NotificationStore
	hub   *Hub
}

func NewService(store NotificationStore, hub *Hub) *Service {
	return &Service{store: store, hub: hub}
}

// BookingCreated tells the hosting family's owner that a group booked them.
func (s *Service) BookingCreated(ctx context.Context, ownerUserID int64, b *domain.Booking, familyName string) {
	n := &domain.Notification{
		UserID:    ownerUserID,
		Type:      domain.NotifBookingCreated,
		Title:     "New booking request",
		Body:      fmt.Sprintf("%s received a booking for %d guest(s), %s package", familyName, b.GuestCount, b.PackageType),
		BookingID: &b.ID,
	}
	s.deliver(ctx, n)
}

// BookingPaid tells the paying user their bookings are confirmed.
func (s *Service) BookingPaid(ctx context.Context, userID int64, bookingIDs []int64, amountHalalas int64) {
	n := &domain.Notification{
		UserID: userID,
		Type:   domain.NotifBookingPaid,
		Title:  "Payment received",
		Body:   fmt.Sprintf("Payment of %.2f SAR confirmed for %d booking(s)", float64(amountHalalas)/100, len(bookingIDs)),
	}
	if len(bookingIDs) == 1 {
		n.BookingID = &bookingIDs[0]
	}
	s.deliver(ctx, n)
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.store.ListByUser(ctx, userID, limit)
}

func (s *Service) MarkRead(ctx context.Context, userID, notifID int64) error {
	return s.store.MarkRead(ctx, userID, notifID)
}

func (s *Service) deliver(ctx context.Context, n *domain.Notification) {
	if err := s.store.Create(ctx, n); err != nil {
		log.Printf("notify: persist failed user_id=%d type=%s err=%v", n.UserID, n.Type, err)
	}
	s.hub.SendToUser(n.UserID, n)
}
