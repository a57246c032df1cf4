package object

import "fmt"

// Environment maps variable names to values for one lexical scope. There is
// no outer pointer: entering a block copies the whole enclosing environment
// and exiting discards the copy, restoring the original bindings verbatim.
type Environment struct {
	Bindings map[string]*Binding
}

type Binding struct {
	Value     Object
	IsMutable bool
}

func NewEnvironment() *Environment {
	return &Environment{Bindings: make(map[string]*Binding)}
}

// Copy clones every binding. The clone and the original share no state, so
// mutations on one side never show on the other.
func (e *Environment) Copy() *Environment {
	next := &Environment{Bindings: make(map[string]*Binding, len(e.Bindings))}
	for name, binding := range e.Bindings {
		next.Bindings[name] = &Binding{
			Value:     binding.Value,
			IsMutable: binding.IsMutable,
		}
	}
	return next
}

func (e *Environment) Get(name string) (Object, bool) {
	binding, ok := e.Bindings[name]
	if !ok {
		return nil, false
	}
	return binding.Value, true
}

// Define adds or overwrites a binding in this scope.
func (e *Environment) Define(name string, val Object, isMutable bool) {
	e.Bindings[name] = &Binding{Value: val, IsMutable: isMutable}
}

func (e *Environment) Assign(name string, val Object) (Object, error) {
	binding, ok := e.Bindings[name]
	if !ok {
		return nil, fmt.Errorf("undefined variable %q", name)
	}
	if !binding.IsMutable {
		return nil, fmt.Errorf("cannot assign to constant %q", name)
	}
	binding.Value = val
	return val, nil
}
