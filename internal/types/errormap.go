package types

// ErrorMap maps a field path to the message describing why that field
// currently fails validation. A missing key means the field is valid or
// has not been validated yet, never an error.
type ErrorMap map[FieldPath]string

// Lookup returns the message for path, if any. Safe on a nil map.
func (m ErrorMap) Lookup(path FieldPath) (string, bool) {
	msg, ok := m[path]
	return msg, ok
}

// Has reports whether path currently has an error.
func (m ErrorMap) Has(path FieldPath) bool {
	_, ok := m[path]
	return ok
}

// Paths returns the failing paths in form order.
func (m ErrorMap) Paths() []FieldPath {
	paths := make([]FieldPath, 0, len(m))
	for _, p := range FieldPaths {
		if m.Has(p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// Clone returns an independent copy.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
