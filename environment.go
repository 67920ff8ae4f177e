package lox

// Environment is one scope of the lexical scope chain. Environments are shared
// by pointer: a function value keeps the environment it was declared in alive
// and observes every later change to it.
type Environment struct {
	outer *Environment // Optional
	store map[string]Value
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		outer: outer,
		store: map[string]Value{},
	}
}

// Define binds name in this environment. A name may be defined only once per
// environment, but may shadow a binding of an outer environment.
func (self *Environment) Define(name string, value Value) error {
	if _, ok := self.store[name]; ok {
		return RuntimeError{Kind: VariableAlreadyDefined, Name: name}
	}
	self.store[name] = value
	return nil
}

// Get looks name up in the nearest environment that binds it.
func (self *Environment) Get(name string) (Value, bool) {
	env := self
	for env != nil {
		value, ok := env.store[name]
		if ok {
			return value, true
		}
		env = env.outer
	}
	return nil, false
}

// Assign rebinds name in the nearest environment that binds it. Assign never
// creates a binding.
func (self *Environment) Assign(name string, value Value) error {
	env := self
	for env != nil {
		_, ok := env.store[name]
		if ok {
			env.store[name] = value
			return nil
		}
		env = env.outer
	}
	return RuntimeError{Kind: VariableNotDefined, Name: name}
}
