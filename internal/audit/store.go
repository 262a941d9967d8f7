package audit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

// Store is the gorm-backed Committer. It is the explicit decorator around the
// persistence commit: every entity write flows through it and picks up its
// audit row, its timestamps, and the delete-to-deactivation rewrite.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Commit writes every recorded entity plus one audit row per entity in a
// single transaction. All rows of one commit share one timestamp. A snapshot
// failure aborts the whole commit: partial audit coverage is worse than no
// write at all.
func (s *Store) Commit(rec *Recorder) error {
	if rec.Empty() {
		return nil
	}
	now := time.Now()

	return s.db.Transaction(func(tx *gorm.DB) error {
		logs := make([]*Log, 0, len(rec.changes))

		for _, c := range rec.changes {
			entry, err := applyChange(tx, c, rec.userName, now)
			if err != nil {
				return err
			}
			logs = append(logs, entry)
		}

		return tx.Create(&logs).Error
	})
}

func applyChange(tx *gorm.DB, c Change, user string, now time.Time) (*Log, error) {
	action := c.Action

	switch action {
	case ActionAdded:
		c.Entity.StampInserted(user, now)
		if err := tx.Create(c.Entity).Error; err != nil {
			return nil, fmt.Errorf("audit commit: create %s: %w", c.Entity.EntityName(), err)
		}
	case ActionModified:
		c.Entity.StampUpdated(user, now)
		if err := tx.Save(c.Entity).Error; err != nil {
			return nil, fmt.Errorf("audit commit: update %s: %w", c.Entity.EntityName(), err)
		}
	case ActionDeleted:
		// Converted in place: the row is deactivated and rewritten as an
		// update, and the audit row reflects the conversion.
		c.Entity.Deactivate()
		c.Entity.StampUpdated(user, now)
		action = ActionModified
		if err := tx.Save(c.Entity).Error; err != nil {
			return nil, fmt.Errorf("audit commit: deactivate %s: %w", c.Entity.EntityName(), err)
		}
	}

	return buildLog(c, action, user, now)
}

func buildLog(c Change, action Action, user string, now time.Time) (*Log, error) {
	current := c.Entity.AuditValues()

	var changed []datamodel.Value
	if c.Action == ActionAdded {
		changed = current
	} else {
		changed = diffValues(c.Original, current)
	}

	original := c.Original
	if original == nil {
		original = []datamodel.Value{}
	}

	changedJSON, err := json.Marshal(changed)
	if err != nil {
		return nil, fmt.Errorf("audit commit: marshal changed values for %s: %w", c.Entity.EntityName(), err)
	}
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("audit commit: marshal original values for %s: %w", c.Entity.EntityName(), err)
	}

	return &Log{
		EntityName:     c.Entity.EntityName(),
		EntityID:       datamodel.EntityIDString(c.Entity.GetID()),
		Action:         string(action),
		UserName:       user,
		Timestamp:      now,
		ChangedValues:  datatypes.JSON(changedJSON),
		OriginalValues: datatypes.JSON(originalJSON),
	}, nil
}

// diffValues keeps only the properties whose value differs from the original
// snapshot, preserving declared order. Properties missing from the snapshot
// count as changed.
func diffValues(original, current []datamodel.Value) []datamodel.Value {
	old := make(map[string]interface{}, len(original))
	for _, v := range original {
		old[v.Key] = v.Value
	}

	changed := make([]datamodel.Value, 0, len(current))
	for _, v := range current {
		prev, ok := old[v.Key]
		if !ok || !reflect.DeepEqual(prev, v.Value) {
			changed = append(changed, v)
		}
	}
	return changed
}
