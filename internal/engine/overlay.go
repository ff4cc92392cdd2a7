package engine

import "sort"

// InputVar is bound to the prompt text while a prompt's command runs.
const InputVar = "INPUT"

// Overlay holds per-scope variables consulted before the global ones.
type Overlay struct {
	vars map[string]string
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{vars: make(map[string]string)}
}

// Get returns the overlay value for name.
func (o *Overlay) Get(name string) (string, bool) {
	v, ok := o.vars[name]
	return v, ok
}

// Set binds name and returns the value it displaced, if any.
func (o *Overlay) Set(name, value string) (prev string, had bool) {
	prev, had = o.vars[name]
	o.vars[name] = value
	return prev, had
}

// Unset removes name.
func (o *Overlay) Unset(name string) {
	delete(o.vars, name)
}

// Len returns the number of bindings.
func (o *Overlay) Len() int {
	return len(o.vars)
}

// Clone returns an independent copy.
func (o *Overlay) Clone() *Overlay {
	c := NewOverlay()
	for k, v := range o.vars {
		c.vars[k] = v
	}
	return c
}

// Map returns a copy of the bindings.
func (o *Overlay) Map() map[string]string {
	return o.Clone().vars
}

type binding struct {
	name  string
	value string
}

// apply binds every entry of vars and returns the bindings it displaced.
// Keys that were absent before are not reported.
func (o *Overlay) apply(vars map[string]string) (displaced []binding, added []string) {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		if prev, had := o.Set(name, vars[name]); had {
			displaced = append(displaced, binding{name: name, value: prev})
		} else {
			added = append(added, name)
		}
	}
	return displaced, added
}

// restore re-binds previously displaced values.
func (o *Overlay) restore(displaced []binding) {
	for _, b := range displaced {
		o.vars[b.name] = b.value
	}
}
