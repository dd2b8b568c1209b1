// Implements the animation side of the scene: attribute value stores
// notifying listeners, the animation target capability, unit conversion
// and a small tween based animation driver.
//
// Everything in this package is meant to be used from a single goroutine,
// the one running the animations and the repaints.
package svganim

// Owner is the element owning animated values.
type Owner interface {
	// HasAttributeNS returns true if the attribute is declared
	// (not animated) on the element.
	HasAttributeNS(ns, ln string) bool
	// HasProperty returns true if the property is declared on the element,
	// either in its style or as a presentation attribute.
	HasProperty(name string) bool
}

// Listener is notified when an animated value changes.
// Listeners are compared with ==, so they must be comparable
// (pointers are the usual choice).
type Listener interface {
	AnimatedAttributeChanged(owner Owner, v *AnimatedValue)
}

// AnimatedValue is the store of one attribute (or property) of an
// element: it tracks if an animated override is active and
// holds the listeners of the attribute.
type AnimatedValue struct {
	owner Owner

	Namespace, LocalName string
	// IsProperty is true for CSS properties slots.
	IsProperty bool

	hasAnimVal bool
	listeners  []Listener // unique members, in registration order
}

// NewAnimatedValue returns the store for the attribute (ns, ln) of owner.
func NewAnimatedValue(owner Owner, ns, ln string) *AnimatedValue {
	return &AnimatedValue{owner: owner, Namespace: ns, LocalName: ln}
}

// NewAnimatedProperty returns the store for the CSS property name of owner.
func NewAnimatedProperty(owner Owner, name string) *AnimatedValue {
	return &AnimatedValue{owner: owner, LocalName: name, IsProperty: true}
}

// Owner returns the element owning the value.
func (v *AnimatedValue) Owner() Owner { return v.owner }

// IsSpecified returns true if an animated value is active or
// if the owner declares the attribute.
func (v *AnimatedValue) IsSpecified() bool {
	if v.hasAnimVal {
		return true
	}
	if v.owner == nil {
		return false
	}
	if v.IsProperty {
		return v.owner.HasProperty(v.LocalName)
	}
	return v.owner.HasAttributeNS(v.Namespace, v.LocalName)
}

// HasAnimatedValue returns true while an animation overrides the value.
func (v *AnimatedValue) HasAnimatedValue() bool { return v.hasAnimVal }

// SetAnimated toggles the override flag. It does not notify the listeners.
func (v *AnimatedValue) SetAnimated(active bool) { v.hasAnimVal = active }

// AddListener registers l. Adding a listener already registered is a no-op.
func (v *AnimatedValue) AddListener(l Listener) {
	for _, other := range v.listeners {
		if other == l {
			return
		}
	}
	v.listeners = append(v.listeners, l)
}

// RemoveListener unregisters l, if present.
func (v *AnimatedValue) RemoveListener(l Listener) {
	for i, other := range v.listeners {
		if other == l {
			v.listeners = append(v.listeners[:i:i], v.listeners[i+1:]...)
			return
		}
	}
}

// NumListeners returns the number of registered listeners.
func (v *AnimatedValue) NumListeners() int { return len(v.listeners) }

// NotifyListeners calls every listener registered when the call starts.
// Listeners may add or remove listeners (including themselves): the
// changes apply to the next notification.
// A panicking listener is not recovered: the panic reaches the caller
// and the following listeners are not notified.
func (v *AnimatedValue) NotifyListeners() {
	if len(v.listeners) == 0 {
		return
	}
	snapshot := append([]Listener(nil), v.listeners...)
	for _, l := range snapshot {
		l.AnimatedAttributeChanged(v.owner, v)
	}
}
