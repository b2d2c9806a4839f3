package payload

import (
	"reflect"
)

// Payload is the wire framing of the data attached to an event.
// It is one of JSON, Text or None.
type Payload interface {
	payload()
}

// JSON is a structured record sent as application/json.
type JSON struct {
	Value any
}

// Text is a string sent verbatim as text/plain.
type Text string

// None is sent without a body or content type.
type None struct{}

func (JSON) payload() {}
func (Text) payload() {}
func (None) payload() {}

// From decides the framing of v once. Maps with string keys and structs
// (or pointers to either) are records, strings are text, anything else
// carries no body.
func From(v any) Payload {
	switch t := v.(type) {
	case nil:
		return None{}
	case Payload:
		return t
	case string:
		return Text(t)
	case map[string]any:
		return JSON{Value: t}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return None{}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return JSON{Value: v}
		}
	case reflect.Struct:
		return JSON{Value: v}
	case reflect.String:
		return Text(rv.String())
	}

	return None{}
}
