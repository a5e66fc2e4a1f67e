package tcl

import (
	"maps"
	"slices"
	"strings"
)

// Context is one scope of variables and arrays. Lookups walk up the parent
// chain; the parent is navigation only and is owned by whoever created it.
type Context struct {
	parent *Context
	vars   map[string]string
	arrays map[string]map[string]string
}

// NewContext returns an empty scope whose lookups fall back to parent.
func NewContext(parent *Context) *Context {
	return &Context{
		parent: parent,
		vars:   make(map[string]string),
		arrays: make(map[string]map[string]string),
	}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (c *Context) Parent() *Context {
	return c.parent
}

// splitArrayName applies the array reference heuristic: a name that ends in
// ')' and contains '(' earlier names an element of an array. The index is
// the text between the last '(' and the final ')'.
func splitArrayName(name string) (array, index string, ok bool) {
	if !strings.HasSuffix(name, ")") {
		return "", "", false
	}
	open := strings.LastIndexByte(name, '(')
	if open < 0 {
		return "", "", false
	}
	return name[:open], name[open+1 : len(name)-1], true
}

// owner returns the scope that defines name, or nil.
func (c *Context) owner(name string) *Context {
	for scope := c; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			return scope
		}
		if _, ok := scope.arrays[name]; ok {
			return scope
		}
	}
	return nil
}

// Get reads a scalar variable or an array element ("name(index)").
func (c *Context) Get(name string) (string, bool) {
	if array, index, ok := splitArrayName(name); ok {
		return c.GetElement(array, index)
	}
	scope := c.owner(name)
	if scope == nil {
		return "", false
	}
	val, ok := scope.vars[name]
	return val, ok
}

// GetElement reads one element of an array.
func (c *Context) GetElement(array, index string) (string, bool) {
	scope := c.owner(array)
	if scope == nil {
		return "", false
	}
	elems, ok := scope.arrays[array]
	if !ok {
		return "", false
	}
	val, ok := elems[index]
	return val, ok
}

// IsArray reports whether name is bound to an array in the visible chain.
func (c *Context) IsArray(name string) bool {
	scope := c.owner(name)
	if scope == nil {
		return false
	}
	_, ok := scope.arrays[name]
	return ok
}

// Set assigns a scalar or array element. An existing binding anywhere in
// the chain is updated in place; otherwise the binding is created here.
func (c *Context) Set(name, value string) {
	if array, index, ok := splitArrayName(name); ok {
		c.SetElement(array, index, value)
		return
	}
	scope := c.owner(name)
	if scope == nil {
		scope = c
	}
	scope.vars[name] = value
}

// Define binds name in this scope, shadowing any outer binding.
func (c *Context) Define(name, value string) {
	c.vars[name] = value
}

// SetElement assigns one element of an array, creating the array if needed.
func (c *Context) SetElement(array, index, value string) {
	scope := c.owner(array)
	if scope == nil {
		scope = c
	}
	elems, ok := scope.arrays[array]
	if !ok {
		elems = make(map[string]string)
		scope.arrays[array] = elems
	}
	elems[index] = value
}

// Unset removes a scalar, a whole array or an array element and returns the
// prior value.
func (c *Context) Unset(name string) (string, bool) {
	if array, index, ok := splitArrayName(name); ok {
		scope := c.owner(array)
		if scope == nil {
			return "", false
		}
		elems := scope.arrays[array]
		val, ok := elems[index]
		if ok {
			delete(elems, index)
		}
		return val, ok
	}
	scope := c.owner(name)
	if scope == nil {
		return "", false
	}
	if val, ok := scope.vars[name]; ok {
		delete(scope.vars, name)
		return val, true
	}
	elems := scope.arrays[name]
	delete(scope.arrays, name)
	return FormatList(flattenArray(elems)), true
}

// Exists reports whether a variable or array element is visible.
func (c *Context) Exists(name string) bool {
	if _, ok := c.Get(name); ok {
		return true
	}
	return c.IsArray(name)
}

// Names returns the visible scalar and array names, sorted.
func (c *Context) Names() []string {
	seen := make(map[string]struct{})
	for scope := c; scope != nil; scope = scope.parent {
		for name := range scope.vars {
			seen[name] = struct{}{}
		}
		for name := range scope.arrays {
			seen[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Snapshot returns a copy of every visible scalar, inner scopes shadowing
// outer ones. Array elements appear as "name(index)".
func (c *Context) Snapshot() map[string]string {
	out := make(map[string]string)
	var scopes []*Context
	for scope := c; scope != nil; scope = scope.parent {
		scopes = append(scopes, scope)
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		maps.Copy(out, scopes[i].vars)
		for array, elems := range scopes[i].arrays {
			for index, val := range elems {
				out[array+"("+index+")"] = val
			}
		}
	}
	return out
}

func flattenArray(elems map[string]string) []string {
	out := make([]string, 0, 2*len(elems))
	for _, index := range slices.Sorted(maps.Keys(elems)) {
		out = append(out, index, elems[index])
	}
	return out
}
