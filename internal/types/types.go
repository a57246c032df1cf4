// Package types holds the closed variant set of static types. Equality is
// structural and recursive; assignability is equality plus a wildcard rule for
// constraint-free placeholders used by registered builtin signatures.
package types

import (
	"bytes"
	"strings"
)

type Type interface {
	typeNode()
	String() string
}

// Primitive is a named base type: number, string, boolean, void.
type Primitive struct {
	Name string
}

func (p *Primitive) typeNode()      {}
func (p *Primitive) String() string { return p.Name }

var (
	Number  = &Primitive{Name: "number"}
	String  = &Primitive{Name: "string"}
	Boolean = &Primitive{Name: "boolean"}
	Void    = &Primitive{Name: "void"}
)

// Function is an ordered parameter list plus a return type.
type Function struct {
	Parameters []Type
	Return     Type
}

func (f *Function) typeNode() {}
func (f *Function) String() string {
	var out bytes.Buffer

	params := []string{}
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("fn(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") -> ")
	out.WriteString(f.Return.String())

	return out.String()
}

// Generic is a placeholder type parameter. Placeholders only occur in
// registered builtin signatures; source annotations never produce them.
type Generic struct {
	Name        string
	Constraints []Type
}

func (g *Generic) typeNode()      {}
func (g *Generic) String() string { return g.Name }

// Option wraps one inner type.
type Option struct {
	Inner Type
}

func (o *Option) typeNode()      {}
func (o *Option) String() string { return "Option<" + o.Inner.String() + ">" }

// Result carries an ok type and an error type.
type Result struct {
	Ok  Type
	Err Type
}

func (r *Result) typeNode() {}
func (r *Result) String() string {
	return "Result<" + r.Ok.String() + ", " + r.Err.String() + ">"
}

// Equals reports exact structural equality. Cross-variant comparisons are
// always false.
func Equals(a, b Type) bool {
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Name == b.Name
	case *Function:
		bf, ok := b.(*Function)
		if !ok || len(a.Parameters) != len(bf.Parameters) {
			return false
		}
		for i, p := range a.Parameters {
			if !Equals(p, bf.Parameters[i]) {
				return false
			}
		}
		return Equals(a.Return, bf.Return)
	case *Generic:
		bg, ok := b.(*Generic)
		return ok && a.Name == bg.Name
	case *Option:
		bo, ok := b.(*Option)
		return ok && Equals(a.Inner, bo.Inner)
	case *Result:
		br, ok := b.(*Result)
		return ok && Equals(a.Ok, br.Ok) && Equals(a.Err, br.Err)
	}
	return false
}

// Assignable reports whether a value of type src may occupy a slot of type
// dst. This is exact structural equality, with no subtyping or widening, except
// that a constraint-free placeholder matches anything, in either direction.
func Assignable(dst, src Type) bool {
	if isWildcard(dst) || isWildcard(src) {
		return true
	}
	switch dst := dst.(type) {
	case *Function:
		sf, ok := src.(*Function)
		if !ok || len(dst.Parameters) != len(sf.Parameters) {
			return false
		}
		for i, p := range dst.Parameters {
			if !Assignable(p, sf.Parameters[i]) {
				return false
			}
		}
		return Assignable(dst.Return, sf.Return)
	case *Option:
		so, ok := src.(*Option)
		return ok && Assignable(dst.Inner, so.Inner)
	case *Result:
		sr, ok := src.(*Result)
		return ok && Assignable(dst.Ok, sr.Ok) && Assignable(dst.Err, sr.Err)
	default:
		return Equals(dst, src)
	}
}

func isWildcard(t Type) bool {
	g, ok := t.(*Generic)
	return ok && len(g.Constraints) == 0
}
