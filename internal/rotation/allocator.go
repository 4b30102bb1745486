// Package rotation implements slot allocation for the payout rotation.
//
// Given a group's pool of unassigned slot numbers and an optional
// preference, it selects exactly one slot and computes the payout cycle
// that slot maps to. The functions are pure: the caller owns removing
// the chosen slot from the pool.
package rotation

import (
	"errors"

	"github.com/halaqahq/halaqa/internal/models"
)

var (
	// ErrSlotUnavailable means the requested slot is not in the pool.
	ErrSlotUnavailable = errors.New("preferred slot not available")

	// ErrNoSlotsAvailable means the pool is empty.
	ErrNoSlotsAvailable = errors.New("no available slots")
)

// AssignSlot selects one slot from the available pool.
//
// A non-nil preferred slot is granted only if present in the pool;
// otherwise ErrSlotUnavailable. With no preference the numerically
// smallest slot wins, so repeated joins get slots 1, 2, 3, ... in
// order. The choice is deterministic and reproducible, never random.
func AssignSlot(available []int, preferred *int) (int, error) {
	if preferred != nil {
		for _, s := range available {
			if s == *preferred {
				return s, nil
			}
		}
		return 0, ErrSlotUnavailable
	}

	if len(available) == 0 {
		return 0, ErrNoSlotsAvailable
	}

	min := available[0]
	for _, s := range available[1:] {
		if s < min {
			min = s
		}
	}
	return min, nil
}

// PayoutCycle computes the 1-based cycle in which the holder of slot
// receives the pooled payout.
//
// Auto order wraps slot numbers beyond the duration back onto it, so a
// 6-slot group over 3 months pays slots 1 and 4 in cycle 1, 2 and 5 in
// cycle 2, and so on. Manual order uses the slot number directly; that
// only makes sense when the member count does not exceed the duration,
// which is not validated here.
func PayoutCycle(slot int, order models.PayoutOrder, durationMonths int) int {
	if order == models.PayoutOrderManual {
		return slot
	}
	return ((slot - 1) % durationMonths) + 1
}

// RemoveSlot returns the pool with the given slot removed, preserving
// the order of the remaining slots.
func RemoveSlot(available []int, slot int) []int {
	out := make([]int, 0, len(available))
	for _, s := range available {
		if s != slot {
			out = append(out, s)
		}
	}
	return out
}
