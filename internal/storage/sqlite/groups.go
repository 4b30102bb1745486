package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/storage"
)

const groupColumns = "id, name, description, monthly_amount, duration_months, total_members, current_members, status, created_by, current_cycle, payout_order, created_at"

// CreateGroup persists a new group and its available slot pool.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.MonthlyAmount,
		group.DurationMonths, group.TotalMembers, group.CurrentMembers,
		string(group.Status), group.CreatedBy, group.CurrentCycle,
		string(group.PayoutOrder), group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, slot := range group.AvailableSlots {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_slots (group_id, slot_number) VALUES (?, ?)",
			group.ID, slot,
		)
		if err != nil {
			return fmt.Errorf("failed to insert slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by key with its available slots in
// ascending order.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := scanGroup(s.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE id = ?", groupID))
	if err != nil {
		return nil, err
	}

	if err := s.loadSlots(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListOpenGroups returns groups still accepting members.
func (s *SQLiteStore) ListOpenGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE status = ? AND current_members < total_members",
		string(models.GroupStatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := s.loadSlots(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// GetGroupsByIDs resolves group keys in order, skipping unresolved keys.
func (s *SQLiteStore) GetGroupsByIDs(ctx context.Context, groupIDs []string) ([]*models.Group, error) {
	var groups []*models.Group
	for _, id := range groupIDs {
		group, err := s.GetGroup(ctx, id)
		if err == storage.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	var status, payoutOrder string
	err := row.Scan(
		&group.ID, &group.Name, &group.Description, &group.MonthlyAmount,
		&group.DurationMonths, &group.TotalMembers, &group.CurrentMembers,
		&status, &group.CreatedBy, &group.CurrentCycle, &payoutOrder,
		&group.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	group.Status = models.GroupStatus(status)
	group.PayoutOrder = models.PayoutOrder(payoutOrder)
	return group, nil
}

func (s *SQLiteStore) loadSlots(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT slot_number FROM group_slots WHERE group_id = ? ORDER BY slot_number",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return fmt.Errorf("failed to scan slot: %w", err)
		}
		group.AvailableSlots = append(group.AvailableSlots, slot)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate slots: %w", err)
	}
	return nil
}
