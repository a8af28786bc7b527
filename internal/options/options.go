package options

// Options is a per-request option set mapping option names to values.
// Values are booleans, strings, numbers, nested option sets (for the
// "children" option), or lists. A nil Options behaves like an empty set:
// only unconditional handlers run.
type Options map[string]any

// Truthy reports whether the named option enables its handlers.
// Missing options, false, nil, zero numbers, and the strings "" and
// "false" are falsy; everything else, including nested structures, is
// truthy.
func (o Options) Truthy(name string) bool {
	if o == nil {
		return false
	}
	v, ok := o[name]
	if !ok {
		return false
	}
	return truthyValue(v)
}

// truthyValue applies the truthiness rules to a single option value.
func truthyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "false"
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		// Nested option sets and lists enable their option.
		return true
	}
}

// String returns the named option as a string. Non-string values report
// false, same as missing options.
func (o Options) String(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	s, ok := o[name].(string)
	return s, ok
}

// Strings returns the named option as a list of strings, accepting both
// []string and []any values. Used for name-filter options such as
// excludeAssets.
func (o Options) Strings(name string) []string {
	if o == nil {
		return nil
	}
	switch v := o[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Clone returns a shallow copy of the option set.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// fromAny coerces a decoded YAML/JSON mapping into an Options value.
func fromAny(v any) (Options, bool) {
	switch t := v.(type) {
	case Options:
		return t, true
	case map[string]any:
		return Options(t), true
	default:
		return nil, false
	}
}
