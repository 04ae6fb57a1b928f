package ecs

import "reflect"

// Resetter is implemented by resources that know how to return to their
// default state in place.
type Resetter interface {
	Reset()
}

func resourceKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// SetResource stores v as the world's singleton of type T.
func SetResource[T any](w *World, v *T) {
	if w == nil || v == nil {
		return
	}
	w.ensure()
	w.resources[resourceKey[T]()] = v
}

// Resource returns the world's singleton of type T, if one was set.
func Resource[T any](w *World) (*T, bool) {
	if w == nil || w.resources == nil {
		return nil, false
	}
	v, ok := w.resources[resourceKey[T]()]
	if !ok {
		return nil, false
	}
	typed, ok := v.(*T)
	return typed, ok
}

// ResetResource returns the T resource to its default. Resources
// implementing Resetter are reset in place so held pointers stay valid;
// anything else is replaced by a zero value. A missing resource is created.
func ResetResource[T any](w *World) *T {
	if w == nil {
		return nil
	}
	if v, ok := Resource[T](w); ok {
		if r, ok := any(v).(Resetter); ok {
			r.Reset()
			return v
		}
		var zero T
		*v = zero
		return v
	}
	v := new(T)
	if r, ok := any(v).(Resetter); ok {
		r.Reset()
	}
	SetResource(w, v)
	return v
}

// RemoveResource drops the T resource.
func RemoveResource[T any](w *World) {
	if w == nil || w.resources == nil {
		return
	}
	delete(w.resources, resourceKey[T]())
}
