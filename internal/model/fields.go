package model

// Fields is decoded request data for create and patch operations.  Keys are
// column names; services sanitize and normalize it before it reaches SQL.
type Fields map[string]any

// Clone returns a shallow copy so callers' maps are never mutated.
func (f Fields) Clone() Fields {
    out := make(Fields, len(f))
    for k, v := range f {
        out[k] = v
    }
    return out
}

// Columns returns the keys of f in the order given by allowed, skipping
// anything not present.  Used to build deterministic SQL.
func (f Fields) Columns(allowed []string) []string {
    cols := make([]string, 0, len(f))
    for _, c := range allowed {
        if _, ok := f[c]; ok {
            cols = append(cols, c)
        }
    }
    return cols
}
