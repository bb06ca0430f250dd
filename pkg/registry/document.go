package registry

// Document is an opaque nested JSON object as decoded by encoding/json. The registry
// schema is only partially known and adds optional fields over time, so reads go
// through safe accessors that default instead of failing.
type Document map[string]any

// Str returns the string at key, or "" when the key is absent or not a string.
func (d Document) Str(key string) string {
	s, _ := d[key].(string)
	return s
}

// StrOr returns the string at key, or def when the key is absent or not a string.
func (d Document) StrOr(key, def string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return def
}

// Int returns the numeric value at key truncated to int, or 0 when absent.
// JSON numbers decode as float64.
func (d Document) Int(key string) int {
	f, _ := d[key].(float64)
	return int(f)
}

// Doc returns the nested object at key, or an empty Document when absent.
func (d Document) Doc(key string) Document {
	if m, ok := d[key].(map[string]any); ok {
		return Document(m)
	}
	return Document{}
}

// Docs returns the list of objects at key; non-object elements are skipped.
func (d Document) Docs(key string) []Document {
	list, ok := d[key].([]any)
	if !ok {
		return nil
	}
	docs := make([]Document, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			docs = append(docs, Document(m))
		}
	}
	return docs
}

// Strings returns the list of strings at key; non-string elements are skipped.
func (d Document) Strings(key string) []string {
	list, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
