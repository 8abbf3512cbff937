// Package cssroot models the document root element the stylesheet reads
// from: a set of CSS custom properties and a set of marker classes.
package cssroot

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Root holds custom properties and classes. It is safe for concurrent
// readers; writes are expected to come from a single owner.
type Root struct {
	mu         sync.RWMutex
	properties map[string]string
	classes    map[string]struct{}
}

// New returns an empty root.
func New() *Root {
	return &Root{
		properties: make(map[string]string),
		classes:    make(map[string]struct{}),
	}
}

// SetProperty sets a custom property, e.g. SetProperty("--primary", "0 0% 50%").
func (r *Root) SetProperty(name, value string) {
	r.mu.Lock()
	r.properties[name] = value
	r.mu.Unlock()
}

// Property returns the value of a custom property.
func (r *Root) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.properties[name]
	return v, ok
}

// Properties returns a copy of every property.
func (r *Root) Properties() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.properties))
	for k, v := range r.properties {
		out[k] = v
	}
	return out
}

// ReplaceClass removes every class in group and adds name, as one step.
// An empty group just adds name.
// Readers never observe the group with zero or two members.
func (r *Root) ReplaceClass(group []string, name string) {
	r.mu.Lock()
	for _, n := range group {
		delete(r.classes, n)
	}
	r.classes[name] = struct{}{}
	r.mu.Unlock()
}

// HasClass reports whether the class is present.
func (r *Root) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Classes returns the classes in sorted order.
func (r *Root) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Snapshot is an immutable copy of the root state.
type Snapshot struct {
	Classes    []string          `json:"classes"`
	Properties map[string]string `json:"properties"`
}

// Snapshot copies properties and classes under one lock.
func (r *Root) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Snapshot{
		Classes:    make([]string, 0, len(r.classes)),
		Properties: make(map[string]string, len(r.properties)),
	}
	for c := range r.classes {
		s.Classes = append(s.Classes, c)
	}
	sort.Strings(s.Classes)
	for k, v := range r.properties {
		s.Properties[k] = v
	}
	return s
}

// Stylesheet renders the snapshot as a ":root" rule. The classes are
// emitted as a comment so a page can mirror them onto <html>.
func (s Snapshot) Stylesheet() string {
	names := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	if len(s.Classes) > 0 {
		fmt.Fprintf(&b, "/* class=%q */\n", strings.Join(s.Classes, " "))
	}
	b.WriteString(":root {\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", n, s.Properties[n])
	}
	b.WriteString("}\n")
	return b.String()
}
