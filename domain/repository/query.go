// Package repository defines the query options shared by every store.
package repository

import "fmt"

// Option applies a modification to a Query.
type Option func(Query) Query

// Query holds conditions, ordering, and pagination for store lookups.
type Query struct {
	conditions []Condition
	orders     []Order
	limit      int
	offset     int
}

// Build creates a Query from a set of options.
func Build(options ...Option) Query {
	q := Query{}
	for _, opt := range options {
		q = opt(q)
	}
	return q
}

// Conditions returns the query conditions.
func (q Query) Conditions() []Condition {
	result := make([]Condition, len(q.conditions))
	copy(result, q.conditions)
	return result
}

// Orders returns the query ordering specifications.
func (q Query) Orders() []Order {
	result := make([]Order, len(q.orders))
	copy(result, q.orders)
	return result
}

// LimitValue returns the limit (0 means no limit).
func (q Query) LimitValue() int {
	return q.limit
}

// OffsetValue returns the offset.
func (q Query) OffsetValue() int {
	return q.offset
}

// ConditionKind distinguishes how a condition is rendered.
type ConditionKind int

// ConditionKind values.
const (
	KindEqual ConditionKind = iota
	KindIn
	KindIsNull
	KindRaw
)

// Condition represents a single query condition.
type Condition struct {
	field string
	value any
	args  []any
	kind  ConditionKind
}

// Field returns the condition field name, or the raw clause for KindRaw.
func (c Condition) Field() string { return c.field }

// Value returns the condition value.
func (c Condition) Value() any { return c.value }

// Args returns the bind arguments of a raw clause.
func (c Condition) Args() []any {
	result := make([]any, len(c.args))
	copy(result, c.args)
	return result
}

// Kind returns how the condition is rendered.
func (c Condition) Kind() ConditionKind { return c.kind }

// In returns true if this is an IN condition (value is a slice).
func (c Condition) In() bool { return c.kind == KindIn }

// String returns a readable representation.
func (c Condition) String() string {
	switch c.kind {
	case KindIn:
		return fmt.Sprintf("%s IN %v", c.field, c.value)
	case KindIsNull:
		return fmt.Sprintf("%s IS NULL", c.field)
	case KindRaw:
		return fmt.Sprintf("%s %v", c.field, c.args)
	default:
		return fmt.Sprintf("%s = %v", c.field, c.value)
	}
}

// Order represents a sort specification.
type Order struct {
	field     string
	ascending bool
}

// Field returns the order field name.
func (o Order) Field() string { return o.field }

// Ascending returns true for ASC, false for DESC.
func (o Order) Ascending() bool { return o.ascending }

// WithCondition adds a field = value equality condition.
// Domain packages use this to define their own typed options.
func WithCondition(field string, value any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, value: value})
		return q
	}
}

// WithConditionIn adds a field IN (values) condition.
func WithConditionIn(field string, values any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, value: values, kind: KindIn})
		return q
	}
}

// WithNull adds a field IS NULL condition.
func WithNull(field string) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, kind: KindIsNull})
		return q
	}
}

// WithWhere adds a raw SQL clause with bind arguments.
func WithWhere(clause string, args ...any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: clause, args: args, kind: KindRaw})
		return q
	}
}

// WithID filters by the "id" column.
func WithID(id string) Option {
	return WithCondition("id", id)
}

// WithIDIn filters by the "id" column using IN.
func WithIDIn(ids []string) Option {
	return WithConditionIn("id", ids)
}

// WithLimit sets the maximum number of results.
func WithLimit(n int) Option {
	return func(q Query) Query {
		q.limit = n
		return q
	}
}

// WithOffset sets the result offset.
func WithOffset(n int) Option {
	return func(q Query) Query {
		q.offset = n
		return q
	}
}

// WithOrderAsc adds ascending ordering on a field.
func WithOrderAsc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: true})
		return q
	}
}

// WithOrderDesc adds descending ordering on a field.
func WithOrderDesc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: false})
		return q
	}
}

// WithPagination returns limit and offset options for a page.
func WithPagination(limit, offset int) []Option {
	return []Option{WithLimit(limit), WithOffset(offset)}
}

// WithCreatedOrder orders by creation time and then id, giving a stable order
// for rows created within the same clock tick.
func WithCreatedOrder() []Option {
	return []Option{WithOrderAsc("created_at"), WithOrderAsc("id")}
}
