package oker

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind is the closed tag set of the runtime value union.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
	KindList
	KindDict
	KindClass
	KindInstance
	KindVoid
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	case KindClass, KindInstance:
		return "unknown"
	default:
		return "void"
	}
}

// List is a mutable, reference-shared sequence of values.
type List struct {
	Items []Value
}

// Dict is a mutable, reference-shared string-keyed mapping.
type Dict struct {
	Entries map[string]Value
}

// Function is a compiled user-function prototype: its entry address
// in the final instruction stream and its parameter names.
type Function struct {
	Name   string
	Params []string
	Addr   int
}

// ClassDef is a blueprint: a name and a method table keyed by the
// method's unqualified name.
type ClassDef struct {
	Name    string
	Methods map[string]*Function
}

// Instance is a reference-shared object: a class pointer plus a
// mutable field map.
type Instance struct {
	Class  *ClassDef
	Fields map[string]Value
}

// Value is a tagged variant. Aggregates (List, Dict, Instance) carry
// a pointer and are shared by reference; Number/String/Bool are
// copied by value.
type Value struct {
	Kind     ValueKind
	Num      float64
	Str      string
	Bool     bool
	List     *List
	Dict     *Dict
	Class    *ClassDef
	Instance *Instance
}

func NumberValue(n float64) Value   { return Value{Kind: KindNumber, Num: n} }
func StringValue(s string) Value    { return Value{Kind: KindString, Str: s} }
func BoolValue(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func ListValue(l *List) Value       { return Value{Kind: KindList, List: l} }
func DictValue(d *Dict) Value       { return Value{Kind: KindDict, Dict: d} }
func ClassValue(c *ClassDef) Value     { return Value{Kind: KindClass, Class: c} }
func InstanceValue(i *Instance) Value { return Value{Kind: KindInstance, Instance: i} }

var Void = Value{Kind: KindVoid}

// Truthy follows the VM's boolean-coercion rule: booleans by value,
// numbers nonzero, strings nonempty, aggregates always true, void false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0
	case KindString:
		return v.Str != ""
	case KindVoid:
		return false
	default:
		return true
	}
}

// valueToNumber implements the VM's numeric coercion: numbers pass
// through, strings parse with 0 on failure, booleans become 0/1,
// everything else is 0.
func valueToNumber(v Value) float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return n
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// valueToString implements the VM's string projection, used by '+'
// concatenation, say, comparisons across mismatched tags, and type coercion.
func valueToString(v Value) string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return formatNumber(v.Num)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindList:
		parts := make([]string, len(v.List.Items))
		for i, item := range v.List.Items {
			parts[i] = valueToString(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		var parts []string
		for k, val := range v.Dict.Entries {
			parts = append(parts, fmt.Sprintf("%s: %s", k, valueToString(val)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindClass:
		return "<class " + v.Class.Name + ">"
	case KindInstance:
		return "<instance " + v.Instance.Class.Name + ">"
	default:
		return "void"
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// valueToBool implements the VM's boolean coercion for the 'bool' builtin.
func valueToBool(v Value) bool { return v.Truthy() }
