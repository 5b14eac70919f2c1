package model

import "time"

// ChangeOp is the kind of mutation a change record captures.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// EntityType names the table a change record targets.
type EntityType string

const (
	EntityAccount     EntityType = "account"
	EntityCategory    EntityType = "category"
	EntitySecurity    EntityType = "security"
	EntityTransaction EntityType = "transaction"
	EntityRule        EntityType = "rule"
)

// ChangeStatus is the sync lifecycle of a change record.
type ChangeStatus string

const (
	ChangePending      ChangeStatus = "pending"
	ChangeSent         ChangeStatus = "sent"
	ChangeAcknowledged ChangeStatus = "acknowledged"
	ChangeConflicted   ChangeStatus = "conflicted"
)

// ChangeRecord is one durable log entry for a local mutation awaiting
// transmission to the remote portfolio service. Records are append-only:
// after acknowledgment they are never modified again. BatchID is assigned
// on first send and reused verbatim when a push is retried, so the remote
// can treat a replayed batch as a no-op.
type ChangeRecord struct {
	ID         string     `gorm:"primaryKey"`
	EntityType EntityType `gorm:"not null;index"`
	EntityID   string     `gorm:"not null;index"`
	Op         ChangeOp   `gorm:"not null"`
	Payload    string     // JSON snapshot of the entity at mutation time
	Revision   int64      `gorm:"not null;uniqueIndex"`
	BatchID    string
	Status     ChangeStatus `gorm:"not null;index;default:pending"`
	CreatedAt  time.Time
}
