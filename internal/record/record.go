package record

import (
	"encoding/json"
	"fmt"

	"github.com/collisiondb/collisiondb/internal/schema"
)

// Record is one collision event. Records are never modified after they are
// built; the store hands out shared pointers to them.
type Record struct {
	id     uint64
	values [schema.FieldCount]Value
}

func (r *Record) ID() uint64 { return r.id }

// Get is the field accessor used by the evaluator.
func (r *Record) Get(field schema.Field) Value {
	if !field.IsValid() {
		return Value{}
	}
	return r.values[field]
}

// WithID returns a copy of the record carrying id.
func (r *Record) WithID(id uint64) *Record {
	c := *r
	c.id = id
	return &c
}

func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, schema.FieldCount+1)
	out["id"] = r.id
	for _, f := range schema.All() {
		if v := r.values[f]; v.Present() {
			out[f.JSONName()] = v.Any()
		}
	}
	return json.Marshal(out)
}

func (r *Record) String() string {
	return fmt.Sprintf("Record(%d %s %s)", r.id, r.values[schema.Borough], r.values[schema.ZipCode])
}

// Builder assembles a Record cell by cell during ingestion.
type Builder struct {
	r Record
}

func NewBuilder() *Builder { return &Builder{} }

// Set stores v for field. The value's kind must be the field's declared kind.
func (b *Builder) Set(field schema.Field, v Value) error {
	if !field.IsValid() {
		return fmt.Errorf("Invalid field: %d", field)
	}
	if v.Present() && v.Kind() != field.Kind() {
		return fmt.Errorf("Invalid value kind for %s: %s", field, v.Kind())
	}
	b.r.values[field] = v
	return nil
}

// MustSet is Set for callers that construct values from the field's kind.
func (b *Builder) MustSet(field schema.Field, v Value) *Builder {
	if err := b.Set(field, v); err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) Build() *Record {
	r := b.r
	return &r
}
