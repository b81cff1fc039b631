// Package views decides which console views and actions are exposed for an
// entry. Each view is guarded by a Gate: a pure predicate over the entry
// snapshot, the acting user's permissions and static configuration.
package views

import (
	"context"

	"mediaconsole/internal/entries/models"
	"mediaconsole/internal/permissions"
)

// View names a gated console view or action.
type View string

const (
	ViewClipAndTrim View = "clipAndTrim"
)

func (v View) String() string { return string(v) }

// PermissionQuery is the read side of a permission set.
type PermissionQuery interface {
	HasAnyPermissions(ps ...permissions.Permission) bool
}

// Context is the input of a gate evaluation.
type Context struct {
	Entry       *models.Entry
	Permissions PermissionQuery
}

// Decision is the outcome of one evaluation together with its sub-results.
type Decision struct {
	View            View `json:"view"`
	Available       bool `json:"available"`
	ByConfiguration bool `json:"byConfiguration"`
	ByPermission    bool `json:"byPermission"`
	ByData          bool `json:"byData"`
}

// Gate guards one view. Implementations never return errors and are safe
// for concurrent use.
type Gate interface {
	View() View
	IsAvailable(ctx context.Context, vc Context) bool
	Evaluate(ctx context.Context, vc Context) Decision
}
