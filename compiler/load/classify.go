package load

import (
	"errors"
	"fmt"
	"go/types"

	"github.com/glowcouch/storage-noodle/dialect/sql/schema"
)

var basicTypes = map[types.BasicKind]schema.Type{
	types.Bool:    schema.TypeBool,
	types.Int8:    schema.TypeInt8,
	types.Int16:   schema.TypeInt16,
	types.Int32:   schema.TypeInt32,
	types.Int:     schema.TypeInt,
	types.Int64:   schema.TypeInt64,
	types.Uint8:   schema.TypeUint8,
	types.Uint16:  schema.TypeUint16,
	types.Uint32:  schema.TypeUint32,
	types.Uint:    schema.TypeUint,
	types.Uint64:  schema.TypeUint64,
	types.Float32: schema.TypeFloat32,
	types.Float64: schema.TypeFloat64,
	types.String:  schema.TypeString,
}

// classify resolves the column type of a field of type t. rawParam is the
// name of the raw id type parameter of the entity, if any. Fields of that
// type parameter, and AssocID references over it, report rawID instead of
// a column type. ref is the referenced entity of AssocID fields.
func classify(t types.Type, rawParam string) (typ schema.Type, rawID bool, ref string, err error) {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		if rawParam != "" && t.Obj().Name() == rawParam {
			return schema.TypeInvalid, true, "", nil
		}
		return schema.TypeInvalid, false, "", fmt.Errorf("type parameter %s is not the raw id parameter", t.Obj().Name())
	case *types.Named:
		obj := t.Obj()
		switch path := pkgPath(obj); {
		case path == noodlePkg && obj.Name() == "AssocID":
			args := t.TypeArgs()
			if args.Len() != 2 {
				return schema.TypeInvalid, false, "", errors.New("malformed AssocID")
			}
			typ, rawID, _, err = classify(args.At(1), rawParam)
			if err != nil {
				return schema.TypeInvalid, false, "", fmt.Errorf("AssocID raw id: %w", err)
			}
			return typ, rawID, entityName(args.At(0)), nil
		case path == "time" && obj.Name() == "Time":
			return schema.TypeTime, false, "", nil
		case path == uuidPkg && obj.Name() == "UUID":
			return schema.TypeUUID, false, "", nil
		}
		// Defined types over a supported basic type or []byte.
		if typ, ok := underlying(t.Underlying()); ok {
			return typ, false, "", nil
		}
	default:
		if typ, ok := underlying(t); ok {
			return typ, false, "", nil
		}
	}
	return schema.TypeInvalid, false, "", fmt.Errorf("unsupported type %s", types.TypeString(t, shortQualifier))
}

func underlying(t types.Type) (schema.Type, bool) {
	switch t := t.(type) {
	case *types.Basic:
		typ, ok := basicTypes[t.Kind()]
		return typ, ok
	case *types.Slice:
		if b, ok := t.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return schema.TypeBytes, true
		}
	}
	return schema.TypeInvalid, false
}

func entityName(t types.Type) string {
	if n, ok := types.Unalias(t).(*types.Named); ok {
		return n.Obj().Name()
	}
	return types.TypeString(t, shortQualifier)
}

func pkgPath(obj types.Object) string {
	if obj.Pkg() == nil {
		return ""
	}
	return obj.Pkg().Path()
}

func shortQualifier(p *types.Package) string {
	return p.Name()
}
