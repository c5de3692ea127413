package kernel

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/Woland2k/semantic-kernel/transport"
)

// nameSeparator joins namespace and function name into the wire name.
// Chat-completion services reject dots in function names.
const nameSeparator = "-"

// Qualify builds the wire name for a function, e.g. "TimePlugin-Date".
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + nameSeparator + name
}

// Declaration is the published identity of a registered function.
// Immutable once listed to the model.
type Declaration struct {
	Namespace   string
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// QualifiedName returns the declaration's wire name.
func (d Declaration) QualifiedName() string {
	return Qualify(d.Namespace, d.Name)
}

// Registry maps qualified names to invocable functions. It is built
// once before the first round and read-only thereafter, so no locking
// is required.
type Registry struct {
	entries map[string]*registration
	order   []string
}

type registration struct {
	fn   Function
	decl Declaration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registration),
	}
}

// Register adds functions under a plugin namespace. Registering an
// already-present qualified name replaces the entry but keeps its
// original position, so declaration order stays deterministic.
func (r *Registry) Register(namespace string, fns ...Function) {
	for _, fn := range fns {
		key := Qualify(namespace, fn.Name())
		if _, exists := r.entries[key]; !exists {
			r.order = append(r.order, key)
		}
		r.entries[key] = &registration{
			fn: fn,
			decl: Declaration{
				Namespace:   namespace,
				Name:        fn.Name(),
				Description: fn.Description(),
				Parameters:  fn.Parameters(),
			},
		}
	}
}

// Resolve looks up a function by its qualified name. Pure lookup: a
// miss is reported through the bool, never an error.
func (r *Registry) Resolve(qualifiedName string) (Function, bool) {
	reg, ok := r.entries[qualifiedName]
	if !ok {
		return nil, false
	}
	return reg.fn, true
}

// Declarations returns all declarations in registration order.
func (r *Registry) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(r.order))
	for _, key := range r.order {
		decls = append(decls, r.entries[key].decl)
	}
	return decls
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	return len(r.order)
}

// functionDefs converts declarations to their wire form.
func (r *Registry) functionDefs() []transport.FunctionDef {
	if len(r.order) == 0 {
		return nil
	}
	defs := make([]transport.FunctionDef, 0, len(r.order))
	for _, d := range r.Declarations() {
		params, _ := json.Marshal(d.Parameters)
		defs = append(defs, transport.FunctionDef{
			Name:        d.QualifiedName(),
			Description: d.Description,
			Parameters:  params,
		})
	}
	return defs
}
