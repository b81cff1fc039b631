// Package filters holds the value filters of the entries list and the
// registry that folds active filters into a store request.
package filters

import (
	"sort"

	"mediaconsole/internal/entries/models"
	"mediaconsole/pkg/platform/strings"
)

// Filter types.
const (
	TypeModerationStatuses = "moderationStatuses"
	TypeMediaTypes         = "mediaTypes"
	TypeIngestionStatuses  = "ingestionStatuses"
)

// Tooltip is a localization token with positional arguments. Text carries
// tooltips that are rendered server side and need no localization.
type Tooltip struct {
	Token string            `json:"token,omitempty"`
	Args  map[string]string `json:"args,omitempty"`
	Text  string            `json:"text,omitempty"`
}

// ValueFilter is one selected value shown as a tag in the list header.
type ValueFilter struct {
	Type    string  `json:"type"`
	Value   string  `json:"value"`
	Label   string  `json:"label"`
	Tooltip Tooltip `json:"tooltip"`
}

func newValueFilter(typ, token, value, label string) ValueFilter {
	return ValueFilter{
		Type:    typ,
		Value:   value,
		Label:   label,
		Tooltip: Tooltip{Token: token, Args: map[string]string{"0": label}},
	}
}

func ModerationStatusesFilter(value, label string) ValueFilter {
	return newValueFilter(TypeModerationStatuses, "applications.content.filters.moderation", value, label)
}

func MediaTypesFilter(value, label string) ValueFilter {
	return newValueFilter(TypeMediaTypes, "applications.content.filters.mediaType", value, label)
}

func IngestionStatusesFilter(value, label string) ValueFilter {
	return newValueFilter(TypeIngestionStatuses, "applications.content.filters.status", value, label)
}

// Applier folds every active filter of one type into the request.
type Applier func(items []ValueFilter, req *models.ListRequest)

// Registry maps filter types to their appliers.
type Registry struct {
	appliers map[string]Applier
}

func NewRegistry() *Registry {
	return &Registry{appliers: make(map[string]Applier)}
}

// Register binds typ to apply, replacing any previous applier.
func (r *Registry) Register(typ string, apply Applier) {
	r.appliers[typ] = apply
}

// Registered reports whether typ has an applier.
func (r *Registry) Registered(typ string) bool {
	_, ok := r.appliers[typ]
	return ok
}

// Apply groups active by type, preserving selection order within a type,
// and runs each registered applier once. Unregistered types are ignored.
func (r *Registry) Apply(active []ValueFilter, req *models.ListRequest) {
	grouped := make(map[string][]ValueFilter)
	for _, f := range active {
		grouped[f.Type] = append(grouped[f.Type], f)
	}
	types := make([]string, 0, len(grouped))
	for typ := range grouped {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		if apply, ok := r.appliers[typ]; ok {
			apply(grouped[typ], req)
		}
	}
}

// joinValues comma-joins the filter values in order.
func joinValues(items []ValueFilter) string {
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.Value
	}
	return strings.JoinList(values)
}

// DefaultRegistry returns a registry with the three entries list filters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeModerationStatuses, func(items []ValueFilter, req *models.ListRequest) {
		req.Filter.ModerationStatusIn = joinValues(items)
	})
	r.Register(TypeMediaTypes, func(items []ValueFilter, req *models.ListRequest) {
		req.Filter.MediaTypeIn = joinValues(items)
	})
	r.Register(TypeIngestionStatuses, func(items []ValueFilter, req *models.ListRequest) {
		req.Filter.StatusIn = joinValues(items)
	})
	return r
}
