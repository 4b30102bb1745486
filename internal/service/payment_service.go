package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/storage"
)

// PaymentService records cycle contributions. It reads the group for
// the contribution amount but never mutates group or membership state.
type PaymentService struct {
	store storage.Store
	ids   *IDGenerator
	now   func() time.Time
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{
		store: store,
		ids:   NewIDGenerator(store),
		now:   time.Now,
	}
}

// MakePayment appends a paid contribution record for the caller against
// a group cycle. The amount is always the group's monthly contribution.
//
// Known gaps, kept on purpose until product says otherwise: the payer
// is not checked for membership, the same cycle can be paid twice, and
// the membership's TotalPaid is not updated.
func (s *PaymentService) MakePayment(ctx context.Context, userID, groupID string, cycleNumber int) (*models.CyclePayment, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().Unix()
	payment := &models.CyclePayment{
		ID:          id,
		GroupID:     groupID,
		UserID:      userID,
		CycleNumber: cycleNumber,
		Amount:      group.MonthlyAmount,
		Status:      models.PaymentStatusPaid,
		PaidAt:      &now,
		CreatedAt:   now,
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("MakePayment failed to persist", "group_id", groupID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded",
		"group_id", groupID,
		"user_id", userID,
		"cycle", cycleNumber,
		"amount", payment.Amount,
	)
	return payment, nil
}

// GetUserPayments returns all payments by a user toward a group.
func (s *PaymentService) GetUserPayments(ctx context.Context, userID, groupID string) ([]*models.CyclePayment, error) {
	return s.store.ListUserPayments(ctx, userID, groupID)
}
