// Package models defines the core domain models for Halaqa.
//
// # Entities
//
//   - Group: a rotating savings group ("halaqa") with a fixed monthly
//     contribution, a fixed member count and a payout rotation
//   - GroupMembership: the binding between a user and a group, carrying
//     the assigned rotation slot and payout cycle
//   - CyclePayment: one contribution payment by a member for a cycle
//   - User: a registered account, holding the ordered list of groups
//     the user has joined
//
// # Design principles
//
//  1. Plain data: models carry no behavior; rotation and lifecycle
//     logic live in internal/rotation and internal/service
//  2. Keys over pointers: relationships are ID strings, never struct
//     references, so every entity serializes independently
//  3. Append-only: entities are never deleted and IDs are never reused
//
// # Reserved fields
//
// Several states and fields exist in the data model but have no write
// path yet: the full/completed/cancelled group statuses, membership
// status transitions past creation, GroupMembership.TotalPaid and
// GroupMembership.HasReceivedPayout. They are persisted faithfully and
// will gain transitions when cycle advancement and cancellation land.
package models
