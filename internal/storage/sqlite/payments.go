package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halaqahq/halaqa/internal/models"
)

// CreatePayment persists a new cycle payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.CyclePayment) error {
	var paidAt sql.NullInt64
	if payment.PaidAt != nil {
		paidAt = sql.NullInt64{Int64: *payment.PaidAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, user_id, cycle_number, amount, status, paid_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, payment.UserID, payment.CycleNumber,
		payment.Amount, string(payment.Status), paidAt, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListUserPayments returns all payments by a user toward a group in
// creation order.
func (s *SQLiteStore) ListUserPayments(ctx context.Context, userID, groupID string) ([]*models.CyclePayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, user_id, cycle_number, amount, status, paid_at, created_at
		 FROM payments WHERE user_id = ? AND group_id = ? ORDER BY created_at, id`,
		userID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.CyclePayment
	for rows.Next() {
		p := &models.CyclePayment{}
		var status string
		var paidAt sql.NullInt64
		err := rows.Scan(
			&p.ID, &p.GroupID, &p.UserID, &p.CycleNumber,
			&p.Amount, &status, &paidAt, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Status = models.PaymentStatus(status)
		if paidAt.Valid {
			p.PaidAt = &paidAt.Int64
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
