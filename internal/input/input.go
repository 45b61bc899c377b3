// Package input holds the state of a single controlled field: the value a view
// renders, a handler that maps a change event onto it, and a reset back to the
// value the parent supplied.
package input

// ChangeEvent is what a field reports when the user changes it.
// Checkbox-like fields fill Checked, text fields fill Value.
type ChangeEvent struct {
	Checked bool
	Value   string
}

// Value is the set of types a controlled field can hold. Keeping it closed means
// Handle never sees a kind it cannot read from a ChangeEvent.
type Value interface {
	bool | string
}

// Input is a controlled field of type T.
type Input[T Value] struct {
	value   T
	initial T
}

// New returns an Input holding initial.
func New[T Value](initial T) Input[T] {
	return Input[T]{value: initial, initial: initial}
}

// Value reports the current value.
func (in Input[T]) Value() T { return in.value }

// Initial reports the value Reset returns to.
func (in Input[T]) Initial() T { return in.initial }

// Handle applies a change event: boolean fields read Checked, text fields read Value.
func (in *Input[T]) Handle(e ChangeEvent) {
	switch p := any(&in.value).(type) {
	case *bool:
		*p = e.Checked
	case *string:
		*p = e.Value
	}
}

// Reset puts the value back to the initial value.
func (in *Input[T]) Reset() { in.value = in.initial }

// Sync re-seeds the field when the parent supplies a different initial value,
// discarding any local change. It reports whether anything changed.
func (in *Input[T]) Sync(initial T) bool {
	if initial == in.initial {
		return false
	}
	in.initial = initial
	in.value = initial
	return true
}
