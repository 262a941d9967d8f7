package datamodel

import (
	"strconv"
	"time"
)

// Value is one named property captured for the audit trail. Values keep the
// declaring entity's field order; they are never re-sorted.
type Value struct {
	Key   string      `json:"Key"`
	Value interface{} `json:"Value"`
}

// Tracked is the soft-delete contract every mutable entity implements. Rows
// are never physically removed: deletion flips IsActive and rewrites the row
// as an update.
type Tracked interface {
	GetID() int64
	EntityName() string
	Active() bool
	Deactivate()
	StampInserted(user string, at time.Time)
	StampUpdated(user string, at time.Time)
	// AuditValues returns every audited property in declared order.
	AuditValues() []Value
}

// Entity carries the shared soft-delete and audit-stamp columns. Embed it with
// the gorm "embedded" tag.
type Entity struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	InsertedUser string     `gorm:"column:inserted_user" json:"inserted_user"`
	InsertedDate time.Time  `gorm:"column:inserted_date" json:"inserted_date"`
	UpdatedUser  *string    `gorm:"column:updated_user" json:"updated_user,omitempty"`
	UpdatedDate  *time.Time `gorm:"column:updated_date" json:"updated_date,omitempty"`
}

func (e *Entity) GetID() int64 { return e.ID }

func (e *Entity) Active() bool { return e.IsActive }

func (e *Entity) Deactivate() { e.IsActive = false }

func (e *Entity) StampInserted(user string, at time.Time) {
	e.InsertedUser = user
	e.InsertedDate = at
	e.IsActive = true
}

func (e *Entity) StampUpdated(user string, at time.Time) {
	e.UpdatedUser = &user
	e.UpdatedDate = &at
}

// BaseValues returns the shared columns as audit values. Entities append these
// after their own fields so every snapshot carries the full row.
func (e *Entity) BaseValues() []Value {
	return []Value{
		{Key: "Id", Value: e.ID},
		{Key: "IsActive", Value: e.IsActive},
		{Key: "InsertedUser", Value: e.InsertedUser},
		{Key: "InsertedDate", Value: e.InsertedDate},
		{Key: "UpdatedUser", Value: e.UpdatedUser},
		{Key: "UpdatedDate", Value: e.UpdatedDate},
	}
}

// EntityIDString is the audit-log representation of an entity id.
func EntityIDString(id int64) string {
	return strconv.FormatInt(id, 10)
}
