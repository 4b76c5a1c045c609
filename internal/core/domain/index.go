package domain

import (
	"fmt"
	"strings"
)

// IndexOrder is the direction (or kind) of a single indexed field.
type IndexOrder int

const (
	Ascending  IndexOrder = 1
	Descending IndexOrder = -1
	Text       IndexOrder = 0
)

// String renders the order the way the server embeds it in index names.
func (o IndexOrder) String() string {
	if o == Text {
		return "text"
	}
	return fmt.Sprintf("%d", int(o))
}

// IndexKey is one field of an index declaration.
type IndexKey struct {
	Field string     `validate:"required"`
	Order IndexOrder `validate:"oneof=-1 0 1"`
}

// IndexSpec declares a secondary index on a collection.
type IndexSpec struct {
	Collection string     `validate:"required"`
	Keys       []IndexKey `validate:"required,min=1,dive"`
	Unique     bool
}

// Name returns the default index name the server assigns, e.g.
// "userId_1_createdAt_-1" or "name_text_description_text".
func (s IndexSpec) Name() string {
	parts := make([]string, 0, len(s.Keys)*2)
	for _, k := range s.Keys {
		parts = append(parts, k.Field, k.Order.String())
	}
	return strings.Join(parts, "_")
}

// Fields lists the indexed field names in declaration order.
func (s IndexSpec) Fields() []string {
	out := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		out[i] = k.Field
	}
	return out
}

func (s IndexSpec) String() string {
	if s.Unique {
		return s.Collection + "." + s.Name() + " (unique)"
	}
	return s.Collection + "." + s.Name()
}
