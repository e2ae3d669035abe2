// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package softdelete deactivates rows and their declared dependents as one unit.

Deleting never removes a row. The parent's active flag is cleared, then every
[Edge] whose parent is that entity clears the flag on the rows that reference
it. All statements run in a single transaction; any failure rolls back the
whole unit so a parent is never inactive while its dependents remain active.

Edges are followed exactly one hop. A dependent that is itself a parent in
another edge is not cascaded further unless that edge is processed by a
separate call.
*/
package softdelete

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
)

// Entity names a table that carries an active flag.
type Entity struct {
	Name         string // Human name used in messages ("Post")
	Table        string
	IDColumn     string
	ActiveColumn string
}

// Edge declares that rows of Child reference Parent through ForeignKey.
type Edge struct {
	Parent     Entity
	Child      Entity
	ForeignKey string
}

// Tx is the transactional view handed to [Store.WithinTx] callbacks.
type Tx interface {
	// Deactivate clears the active flag of one active row and returns the
	// number of rows changed (0 or 1).
	Deactivate(ctx context.Context, entity Entity, id string) (int64, error)

	// DeactivateDependents clears the active flag on every active child of
	// parentID and returns the number of rows changed.
	DeactivateDependents(ctx context.Context, edge Edge, parentID string) (int64, error)
}

// Store opens the single transaction a soft delete runs in.
type Store interface {
	// WithinTx runs fn in one transaction, committing only if fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Result reports what a soft delete changed.
type Result struct {
	Entity     string           `json:"entity"`
	ID         string           `json:"id"`
	Dependents map[string]int64 `json:"dependents"`
}

// Manager applies soft deletes over a fixed edge table.
type Manager struct {
	store Store
	edges []Edge
}

// NewManager creates a [Manager] for the given edges.
func NewManager(store Store, edges ...Edge) *Manager {
	return &Manager{store: store, edges: edges}
}

// EdgesFrom returns the edges whose parent is entity, in declaration order.
func (manager *Manager) EdgesFrom(entity Entity) []Edge {
	var matched []Edge
	for _, edge := range manager.edges {
		if edge.Parent.Table == entity.Table {
			matched = append(matched, edge)
		}
	}
	return matched
}

/*
SoftDelete deactivates the row id of entity and its declared dependents.

Returns:
  - *Result: Per-edge counts of deactivated dependents
  - error: NOT_FOUND when the row is missing or already inactive,
    STORE_UNAVAILABLE when any statement fails (nothing is committed)
*/
func (manager *Manager) SoftDelete(ctx context.Context, entity Entity, id string) (*Result, error) {
	result := &Result{Entity: entity.Name, ID: id, Dependents: map[string]int64{}}
	edges := manager.EdgesFrom(entity)

	err := manager.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		changed, err := tx.Deactivate(ctx, entity, id)
		if err != nil {
			return err
		}
		if changed == 0 {
			return apperr.NotFound(entity.Name)
		}

		for _, edge := range edges {
			count, err := tx.DeactivateDependents(ctx, edge, id)
			if err != nil {
				return err
			}
			result.Dependents[edge.Child.Name] += count
		}
		return nil
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.StoreUnavailable(fmt.Errorf("soft_delete_%s_failed: %w", entity.Table, err))
	}

	attributes := []any{slog.String("entity", entity.Name), slog.String("id", id)}
	for child, count := range result.Dependents {
		attributes = append(attributes, slog.Int64(child+"_deactivated", count))
	}
	ctxutil.GetLogger(ctx).InfoContext(ctx, "soft_deleted", attributes...)

	return result, nil
}
