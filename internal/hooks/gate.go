package hooks

// Gate decides whether a registered handler participates in a request.
// It is a tagged variant: either the reserved unconditional gate or a
// named-option gate. The zero value admits nothing and is not a valid
// registration; use Always or WhenOption.
type Gate struct {
	option string
	always bool
}

// Always returns the unconditional gate. Handlers registered with it run
// for every request, even with an empty option set.
func Always() Gate {
	return Gate{always: true}
}

// WhenOption returns a gate admitting the handler only when the named
// option is truthy in the request's option set.
func WhenOption(name string) Gate {
	return Gate{option: name}
}

// Admits reports whether the gate admits a handler for a request whose
// option truthiness is answered by truthy. A nil truthy func stands for an
// empty option set: only unconditional handlers are admitted.
func (g Gate) Admits(truthy func(string) bool) bool {
	if g.always {
		return true
	}
	if g.option == "" || truthy == nil {
		return false
	}
	return truthy(g.option)
}

// String returns the registration key form of the gate: "_" for the
// unconditional gate, otherwise the option name.
func (g Gate) String() string {
	if g.always {
		return "_"
	}
	return g.option
}
