package result

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/kvql/lib/convert"
	"github.com/ValentinKolb/kvql/lib/query"
)

// Shape tells the consumer how to read the payload of a Result.
type Shape string

const (
	ShapeList Shape = "list" // The payload is a []any sequence.
	ShapeMap  Shape = "map"  // The payload is a *convert.FieldMap.
)

// Result is the uniform value handed back for every query: the query that
// produced it, the payload shape and the converted payload.
// A Result is never modified after it was created.
type Result struct {
	query   query.Query
	shape   Shape
	payload any
}

// NewListResult wraps a sequence payload. A nil list becomes an empty one.
func NewListResult(q query.Query, list []any) Result {
	if list == nil {
		list = []any{}
	}
	return Result{query: q, shape: ShapeList, payload: list}
}

// NewMapResult wraps a field map payload. A nil map becomes an empty one.
func NewMapResult(q query.Query, fields *convert.FieldMap) Result {
	if fields == nil {
		fields = convert.NewFieldMap(0)
	}
	return Result{query: q, shape: ShapeMap, payload: fields}
}

// Wrap picks the shape from an already converted payload.
// Sequences and field maps keep their shape, scalars become a one element list.
func Wrap(q query.Query, payload any) (Result, error) {
	switch v := payload.(type) {
	case []any:
		return NewListResult(q, v), nil
	case *convert.FieldMap:
		return NewMapResult(q, v), nil
	case nil, string, int64, float64, bool:
		return NewListResult(q, []any{v}), nil
	default:
		return Result{}, fmt.Errorf("payload of type %T is not a canonical value", payload)
	}
}

// Query returns the query that produced the result.
func (r Result) Query() query.Query {
	return r.query
}

// Shape returns the payload shape.
func (r Result) Shape() Shape {
	return r.shape
}

// Payload returns the raw payload ([]any or *convert.FieldMap).
func (r Result) Payload() any {
	return r.payload
}

// List returns the payload if the result is list shaped.
func (r Result) List() ([]any, bool) {
	list, ok := r.payload.([]any)
	return list, ok && r.shape == ShapeList
}

// Map returns the payload if the result is map shaped.
func (r Result) Map() (*convert.FieldMap, bool) {
	fields, ok := r.payload.(*convert.FieldMap)
	return fields, ok && r.shape == ShapeMap
}

// Len returns the number of elements (list) or fields (map).
func (r Result) Len() int {
	if list, ok := r.List(); ok {
		return len(list)
	}
	if fields, ok := r.Map(); ok {
		return fields.Len()
	}
	return 0
}

// jsonResult is the wire form of a Result.
type jsonResult struct {
	Query  query.Query `json:"query" yaml:"query"`
	Type   Shape       `json:"type" yaml:"type"`
	Result any         `json:"result" yaml:"result"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonResult{Query: r.query, Type: r.shape, Result: r.payload})
}

func (r Result) MarshalYAML() (any, error) {
	return jsonResult{Query: r.query, Type: r.shape, Result: r.payload}, nil
}
