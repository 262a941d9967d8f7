// Package audit captures one append-only log row for every entity mutation
// that reaches storage. The Recorder collects pending changes and the Store
// commits them: entity writes and their audit rows persist in one transaction
// or not at all.
package audit

import (
	"time"

	"gorm.io/datatypes"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

type Action string

const (
	ActionAdded    Action = "Added"
	ActionModified Action = "Modified"
	ActionDeleted  Action = "Deleted"
)

// anonymousUser stamps commits that happen outside an authenticated session
// (seeding, migrations, CLI maintenance).
const anonymousUser = "anonymous"

// Log is one audit row. ChangedValues holds only the properties whose value
// differs from the persisted original; OriginalValues holds every property's
// pre-change value (empty for added entities). Both serialize as a stable
// array of {Key, Value} objects in the entity's declared field order.
type Log struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	EntityName     string         `gorm:"column:entity_name" json:"entity_name"`
	EntityID       string         `gorm:"column:entity_id" json:"entity_id"`
	Action         string         `gorm:"column:action" json:"action"`
	UserName       string         `gorm:"column:user_name" json:"user_name"`
	Timestamp      time.Time      `gorm:"column:timestamp" json:"timestamp"`
	ChangedValues  datatypes.JSON `gorm:"column:changed_values" json:"changed_values"`
	OriginalValues datatypes.JSON `gorm:"column:original_values" json:"original_values"`
}

func (Log) TableName() string { return "audit_logs" }

// Snapshot copies an entity's current audit values. Services take a snapshot
// right after loading an entity, before mutating it; the Recorder diffs the
// snapshot against the entity's state at commit time.
func Snapshot(e datamodel.Tracked) []datamodel.Value {
	values := e.AuditValues()
	copied := make([]datamodel.Value, len(values))
	copy(copied, values)
	return copied
}

// Change is one recorded mutation awaiting commit.
type Change struct {
	Entity   datamodel.Tracked
	Action   Action
	Original []datamodel.Value
}

// Recorder accumulates the change set of one logical command. It is not safe
// for concurrent use; build one per request.
type Recorder struct {
	userName string
	changes  []Change
}

func NewRecorder(userName string) *Recorder {
	if userName == "" {
		userName = anonymousUser
	}
	return &Recorder{userName: userName}
}

func (r *Recorder) UserName() string { return r.userName }

// Added registers a new entity. Its changed values are all of its properties;
// it has no originals.
func (r *Recorder) Added(e datamodel.Tracked) {
	r.changes = append(r.changes, Change{Entity: e, Action: ActionAdded})
}

// Modified registers an updated entity together with the snapshot taken
// before mutation.
func (r *Recorder) Modified(e datamodel.Tracked, original []datamodel.Value) {
	r.changes = append(r.changes, Change{Entity: e, Action: ActionModified, Original: original})
}

// Deleted registers a logical delete. At commit time it is rewritten as a
// modification with IsActive=false; no physical delete ever reaches storage.
func (r *Recorder) Deleted(e datamodel.Tracked, original []datamodel.Value) {
	r.changes = append(r.changes, Change{Entity: e, Action: ActionDeleted, Original: original})
}

func (r *Recorder) Empty() bool { return len(r.changes) == 0 }

// Changes exposes the recorded change set in registration order.
func (r *Recorder) Changes() []Change { return r.changes }

// Committer persists a recorded change set atomically.
type Committer interface {
	Commit(rec *Recorder) error
}
