package semantic

import (
	"github.com/noxy-lang/noxy/internal/ast"
	"github.com/noxy-lang/noxy/internal/types"
)

// StructInfo is a registered struct declaration: an ordered field list plus
// a name-indexed lookup, since constructor calls must match fields in
// declaration order (spec.md §4.3 "Calls").
type StructInfo struct {
	Name       string
	FieldOrder []string
	FieldTypes map[string]types.Type
}

// FuncInfo is a registered function signature.
type FuncInfo struct {
	Name       string
	Params     []ParamInfo
	ReturnType types.Type
}

// ParamInfo is one resolved parameter: its slot type and whether it binds
// by reference (SPEC_FULL.md §A).
type ParamInfo struct {
	Name  string
	Type  types.Type
	ByRef bool
}

// Module is the exported surface of an analyzed source file, used both to
// populate a `use` namespace and, when the current file's own top-level
// declarations are exported, as the unit of module-loader caching
// (spec.md §4.5).
type Module struct {
	Funcs   map[string]*FuncInfo
	Structs map[string]*StructInfo
	Globals map[string]types.Type
}

// Resolved is what a `use` path resolves to (spec.md §4.5 resolution
// rules): a single file module, or a directory module whose children are
// keyed by file stem (used only by the `select *` directory form).
type Resolved struct {
	File *Module
	Dir  map[string]*Module
}

// Importer resolves a `use` path to its Resolved form. The module loader
// package implements this, keeping semantic free of filesystem and cache
// concerns (spec.md §4.5 "Module cache").
type Importer interface {
	Import(path []string) (*Resolved, error)
}

// resolveTypeExpr converts parsed type syntax into a types.Type, looking
// up named types against the struct registry.
func (a *Analyzer) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		switch t.Name {
		case "int":
			return types.Int
		case "float":
			return types.Float
		case "string":
			return types.String
		case "bool":
			return types.Bool
		case "void":
			return types.Void
		default:
			a.fail(te.Pos(), "unknown primitive type '%s'", t.Name)
			return types.Void
		}
	case *ast.NamedTypeExpr:
		if _, ok := a.structs[t.Name]; !ok {
			a.fail(te.Pos(), "undeclared type '%s'", t.Name)
			return types.Void
		}
		return types.StructType{Name: t.Name}
	case *ast.ArrayTypeExpr:
		elem := a.resolveTypeExpr(t.Elem)
		if t.Fixed {
			return types.FixedArrayType{Elem: elem, Size: t.Size}
		}
		return types.DynamicArrayType{Elem: elem}
	case *ast.MapTypeExpr:
		key := a.resolveTypeExpr(t.Key)
		val := a.resolveTypeExpr(t.Value)
		if !types.IsHashableKey(key) {
			a.fail(te.Pos(), "map key type '%s' must be int, string, or bool", key)
		}
		return types.MapType{Key: key, Value: val}
	case *ast.RefTypeExpr:
		inner := a.resolveTypeExpr(t.Inner)
		if !types.IsStruct(inner) {
			a.fail(te.Pos(), "'ref' type is only valid for struct types, got '%s'", inner)
		}
		return types.RefType{Inner: inner}
	default:
		a.fail(te.Pos(), "unsupported type expression")
		return types.Void
	}
}
