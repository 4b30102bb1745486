package sqlite

import (
	"context"
	"fmt"

	"github.com/halaqahq/halaqa/internal/models"
)

// CreateMembership applies a completed join in one transaction: the
// group row and slot pool are rewritten to the caller-supplied state,
// the membership is inserted, and the group key is appended to the
// user's joined-groups list. A failure at any step applies nothing.
func (s *SQLiteStore) CreateMembership(ctx context.Context, group *models.Group, membership *models.GroupMembership) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE groups SET current_members = ?, status = ? WHERE id = ?",
		group.CurrentMembers, string(group.Status), group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM group_slots WHERE group_id = ? AND slot_number = ?",
		group.ID, membership.SlotNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to remove slot: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO memberships (id, user_id, group_id, slot_number, payout_cycle, status, joined_at, total_paid, has_received_payout)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		membership.ID, membership.UserID, membership.GroupID,
		membership.SlotNumber, membership.PayoutCycle,
		string(membership.Status), membership.JoinedAt,
		membership.TotalPaid, boolToInt(membership.HasReceivedPayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO user_groups (user_id, group_id) VALUES (?, ?)",
		membership.UserID, membership.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to append joined group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListGroupMemberships returns all memberships of a group in join order.
func (s *SQLiteStore) ListGroupMemberships(ctx context.Context, groupID string) ([]*models.GroupMembership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, group_id, slot_number, payout_cycle, status, joined_at, total_paid, has_received_payout
		 FROM memberships WHERE group_id = ? ORDER BY joined_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.GroupMembership
	for rows.Next() {
		m := &models.GroupMembership{}
		var status string
		var hasReceived int
		err := rows.Scan(
			&m.ID, &m.UserID, &m.GroupID, &m.SlotNumber, &m.PayoutCycle,
			&status, &m.JoinedAt, &m.TotalPaid, &hasReceived,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Status = models.MembershipStatus(status)
		m.HasReceivedPayout = hasReceived != 0
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return memberships, nil
}
