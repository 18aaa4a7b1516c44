// Package audit defines the entity-change audit trail contract.
// The PostgreSQL implementation lives in infrastructure/storage/postgres.
package audit

import (
	"context"

	"estoque/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry describes one entity change. Changes is marshaled to JSON by the
// recorder; large payloads are compressed before storage.
type Entry struct {
	EntityType string
	EntityID   id.ID
	Action     Action
	ActorID    string
	Changes    any
}

// Recorder persists audit entries. Recording is best-effort: implementations
// log failures and never propagate them into the business operation.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Nop is a Recorder that discards entries. Used in tests and tools that do
// not carry an audit trail.
type Nop struct{}

func (Nop) Record(ctx context.Context, entry Entry) {}
