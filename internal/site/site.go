package site

import "reflect"

// Site is the typed form of a site document.
type Site struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Notify Notify `json:"notify" yaml:"notify"`
}

type Notify struct {
	Webhooks map[string][]string `json:"webhooks,omitempty" yaml:"webhooks,omitempty"`
}

// Registry is implemented by site values that resolve their own webhooks.
type Registry interface {
	Webhooks(event string) []string
}

func (s Site) Webhooks(event string) []string {
	return s.Notify.Webhooks[event]
}

// Webhooks returns the entries registered for event under notify.webhooks.
// Any unexpected shape along that path yields nil. Entries are returned
// as-is, so a malformed sequence keeps its length.
func Webhooks(site any, event string) []any {
	if site == nil {
		return nil
	}

	if r, ok := site.(Registry); ok {
		if isNilPointer(site) {
			return nil
		}
		return fromStrings(r.Webhooks(event))
	}

	notify, ok := field(site, "notify")
	if !ok {
		return nil
	}

	webhooks, ok := field(notify, "webhooks")
	if !ok {
		return nil
	}

	urls, ok := field(webhooks, event)
	if !ok {
		return nil
	}

	return sequence(urls)
}

func field(v any, key string) (any, bool) {
	switch m := v.(type) {
	case map[string]any:
		got, ok := m[key]
		return got, ok
	case map[any]any:
		got, ok := m[key]
		return got, ok
	case map[string][]string:
		got, ok := m[key]
		return got, ok
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	got := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !got.IsValid() {
		return nil, false
	}

	return got.Interface(), true
}

func sequence(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []string:
		return fromStrings(s)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}

	// a []byte is a scalar blob, not a list of URLs
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}

func fromStrings(ss []string) []any {
	if len(ss) == 0 {
		return nil
	}

	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
