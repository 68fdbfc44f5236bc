// Package form holds client-side form state: field values, per-field
// validation errors and touched flags.
package form

import (
	"maps"
	"sync"
)

// Draft is the state of one form. The zero value is not usable; call New.
type Draft struct {
	mu      sync.RWMutex
	values  map[string]string
	flags   map[string]bool
	errors  map[string]string
	touched map[string]bool
}

func New() *Draft {
	d := &Draft{}
	d.reset()
	return d
}

// Set stores a text value, marks the field touched and clears its error.
func (d *Draft) Set(field, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[field] = value
	d.edit(field)
}

// SetBool stores a checkbox value, marks the field touched and clears its error.
func (d *Draft) SetBool(field string, value bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flags[field] = value
	d.edit(field)
}

func (d *Draft) edit(field string) {
	d.touched[field] = true
	delete(d.errors, field)
}

func (d *Draft) Value(field string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.values[field]
}

func (d *Draft) Bool(field string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.flags[field]
}

func (d *Draft) Touched(field string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.touched[field]
}

// Error returns the current error of field, or "".
func (d *Draft) Error(field string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errors[field]
}

// Errors returns a copy of all field errors.
func (d *Draft) Errors() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.errors)
}

// HasErrors reports whether any field has an error.
func (d *Draft) HasErrors() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.errors) > 0
}

// SetErrors replaces all field errors.
func (d *Draft) SetErrors(errs map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = maps.Clone(errs)
	if d.errors == nil {
		d.errors = map[string]string{}
	}
}

// Load replaces the draft with stored values. No field is marked touched.
func (d *Draft) Load(values map[string]string, flags map[string]bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	maps.Copy(d.values, values)
	maps.Copy(d.flags, flags)
}

// Reset clears values, errors and touched flags.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Draft) reset() {
	d.values = map[string]string{}
	d.flags = map[string]bool{}
	d.errors = map[string]string{}
	d.touched = map[string]bool{}
}
