package object

// binding is a (value, visibility) pair stored under a name.
type binding struct {
	value  Value
	public bool
	sig    *Signature // set only for host-registered functions
}

// Environment is a chained scope frame: a mapping from names to bindings,
// with an optional enclosing parent. Functions capture their defining
// Environment by reference, extending its lifetime beyond the frame that
// created it.
type Environment struct {
	store map[string]*binding
	outer *Environment
	// public lists names exposed on this environment's public surface, in
	// declaration order, for module-mode consumers.
	public []string
}

// New creates a root environment with no enclosing scope.
func New() *Environment {
	return &Environment{store: make(map[string]*binding)}
}

// Enclose produces a fresh child environment whose parent is e.
func (e *Environment) Enclose() *Environment {
	return &Environment{store: make(map[string]*binding), outer: e}
}

// Define inserts a private binding in the current scope.
func (e *Environment) Define(name string, v Value) {
	e.store[name] = &binding{value: v}
}

// DefinePub inserts a binding in the current scope and marks it public.
func (e *Environment) DefinePub(name string, v Value) {
	e.store[name] = &binding{value: v, public: true}
	e.public = append(e.public, name)
}

// DefinePubFunc is the host-registration path: it additionally records
// signature metadata.
func (e *Environment) DefinePubFunc(name string, v Value, sig Signature) {
	e.store[name] = &binding{value: v, public: true, sig: &sig}
	e.public = append(e.public, name)
}

// Get looks up name, walking outward through enclosing scopes.
func (e *Environment) Get(name string) (Value, bool) {
	if b, ok := e.store[name]; ok {
		return b.value, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// GetAt looks up name exactly depth scopes outward, used with the
// resolver's locals table.
func (e *Environment) GetAt(depth int, name string) (Value, bool) {
	env := e.ancestor(depth)
	if env == nil {
		return nil, false
	}
	if b, ok := env.store[name]; ok {
		return b.value, true
	}
	return nil, false
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		if env == nil {
			return nil
		}
		env = env.outer
	}
	return env
}

// Assign overwrites an existing binding, preserving its visibility; it
// fails (returns false) if name is undefined anywhere in the chain.
func (e *Environment) Assign(name string, v Value) bool {
	if b, ok := e.store[name]; ok {
		b.value = v
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, v)
	}
	return false
}

// Has reports whether name is bound in the current scope only (not outer
// scopes).
func (e *Environment) Has(name string) bool {
	_, ok := e.store[name]
	return ok
}

// PublicNames returns the names published via DefinePub/DefinePubFunc in
// this environment, in declaration order.
func (e *Environment) PublicNames() []string {
	return append([]string(nil), e.public...)
}

// TypeCheck relates a declared type-kind token's lexeme to a runtime
// value's type name, with "any" matching anything.
func TypeCheck(declaredLexeme string, v Value) bool {
	if declaredLexeme == "any" || declaredLexeme == "" {
		return true
	}
	if declaredLexeme == "void" {
		_, isVoid := v.(Void)
		_, isNull := v.(Null)
		return isVoid || isNull
	}
	return declaredLexeme == v.TypeName()
}
