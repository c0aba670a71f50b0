package oker

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"
)

// ExitSignal is raised by the 'exit' built-in. Unlike a RuntimeError
// it is never caught by a try/fail boundary: it propagates straight
// out of the execution loop to the caller.
type ExitSignal struct {
	Code int
}

func (e *ExitSignal) Error() string { return fmt.Sprintf("exit requested with code %d", e.Code) }

type builtinFunc func(vm *VM, pc int, args []Value) (Value, error)

// builtins is the dispatch table for every name in the built-in
// surface, keyed by name rather than chained string comparisons.
var builtins = map[string]builtinFunc{
	"say":         biSay,
	"input":       biInput,
	"str":         biStr,
	"num":         biNum,
	"bool":        biBool,
	"type":        biType,
	"len":         biLen,
	"upper":       biUpper,
	"lower":       biLower,
	"strip":       biStrip,
	"charAt":      biCharAt,
	"split_str":   biSplitStr,
	"replace_str": biReplaceStr,
	"sbuild_new":  biSbuildNew,
	"sbuild_add":  biSbuildAdd,
	"sbuild_get":  biSbuildGet,
	"list_add":    biListAdd,
	"abs":         biAbs,
	"random":      biRandom,
	"round":       biRound,
	"get":         biGet,
	"save":        biSave,
	"deletef":     biDeletef,
	"exists":      biExists,
	"sleep":       biSleep,
	"exit":        biExit,
}

var builtinNames = sortedBuiltinNames()

func sortedBuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func biSay(vm *VM, pc int, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = valueToString(a)
	}
	fmt.Fprintln(vm.Out, strings.Join(parts, " "))
	return NumberValue(0), nil
}

func biInput(vm *VM, pc int, args []Value) (Value, error) {
	if len(args) > 0 {
		fmt.Fprint(vm.Out, valueToString(args[0]))
	}
	if vm.in == nil {
		vm.in = bufio.NewReader(vm.In)
	}
	line, err := vm.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return StringValue(""), nil
	}
	return StringValue(line), nil
}

func biStr(vm *VM, pc int, args []Value) (Value, error) {
	return StringValue(valueToString(arg(args, 0))), nil
}

func biNum(vm *VM, pc int, args []Value) (Value, error) {
	return NumberValue(valueToNumber(arg(args, 0))), nil
}

func biBool(vm *VM, pc int, args []Value) (Value, error) {
	return BoolValue(valueToBool(arg(args, 0))), nil
}

func biType(vm *VM, pc int, args []Value) (Value, error) {
	return StringValue(arg(args, 0).Kind.String()), nil
}

func biLen(vm *VM, pc int, args []Value) (Value, error) {
	v := arg(args, 0)
	switch v.Kind {
	case KindString:
		return NumberValue(float64(len(v.Str))), nil
	case KindList:
		return NumberValue(float64(len(v.List.Items))), nil
	default:
		return NumberValue(0), runtimeErrorf(pc, "'len' requires a string or list")
	}
}

func biUpper(vm *VM, pc int, args []Value) (Value, error) {
	return StringValue(strings.ToUpper(valueToString(arg(args, 0)))), nil
}

func biLower(vm *VM, pc int, args []Value) (Value, error) {
	return StringValue(strings.ToLower(valueToString(arg(args, 0)))), nil
}

func biStrip(vm *VM, pc int, args []Value) (Value, error) {
	return StringValue(strings.TrimSpace(valueToString(arg(args, 0)))), nil
}

func biCharAt(vm *VM, pc int, args []Value) (Value, error) {
	s := valueToString(arg(args, 0))
	idx := int(valueToNumber(arg(args, 1)))
	if idx < 0 || idx >= len(s) {
		return StringValue(""), nil
	}
	return StringValue(string(s[idx])), nil
}

func biSplitStr(vm *VM, pc int, args []Value) (Value, error) {
	s := valueToString(arg(args, 0))
	delim := valueToString(arg(args, 1))
	var parts []string
	if delim == "" {
		// Open question: unspecified by the source for an empty
		// delimiter. Split into individual characters.
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s, delim)
	}
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = StringValue(p)
	}
	return ListValue(&List{Items: items}), nil
}

func biReplaceStr(vm *VM, pc int, args []Value) (Value, error) {
	src := valueToString(arg(args, 0))
	old := valueToString(arg(args, 1))
	new_ := valueToString(arg(args, 2))
	return StringValue(strings.ReplaceAll(src, old, new_)), nil
}

func biSbuildNew(vm *VM, pc int, args []Value) (Value, error) {
	vm.sbuild.Reset()
	return BoolValue(true), nil
}

func biSbuildAdd(vm *VM, pc int, args []Value) (Value, error) {
	vm.sbuild.WriteString(valueToString(arg(args, 0)))
	return BoolValue(true), nil
}

func biSbuildGet(vm *VM, pc int, args []Value) (Value, error) {
	return StringValue(vm.sbuild.String()), nil
}

func biListAdd(vm *VM, pc int, args []Value) (Value, error) {
	list := arg(args, 0)
	if list.Kind != KindList {
		return Void, runtimeErrorf(pc, "'list_add' requires a list")
	}
	list.List.Items = append(list.List.Items, arg(args, 1))
	return list, nil
}

func biAbs(vm *VM, pc int, args []Value) (Value, error) {
	return NumberValue(math.Abs(valueToNumber(arg(args, 0)))), nil
}

func biRandom(vm *VM, pc int, args []Value) (Value, error) {
	if len(args) >= 2 {
		min := valueToNumber(args[0])
		max := valueToNumber(args[1])
		return NumberValue(min + rand.Float64()*(max-min)), nil
	}
	return NumberValue(rand.Float64()), nil
}

func biRound(vm *VM, pc int, args []Value) (Value, error) {
	n := valueToNumber(arg(args, 0))
	places := 0.0
	if len(args) >= 2 {
		places = valueToNumber(args[1])
	}
	factor := math.Pow(10, places)
	return NumberValue(math.Round(n*factor) / factor), nil
}

func biGet(vm *VM, pc int, args []Value) (Value, error) {
	path := valueToString(arg(args, 0))
	data, err := os.ReadFile(path)
	if err != nil {
		return BoolValue(false), nil
	}
	return StringValue(string(data)), nil
}

func biSave(vm *VM, pc int, args []Value) (Value, error) {
	path := valueToString(arg(args, 0))
	content := valueToString(arg(args, 1))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return BoolValue(false), nil
	}
	return BoolValue(true), nil
}

func biDeletef(vm *VM, pc int, args []Value) (Value, error) {
	path := valueToString(arg(args, 0))
	if err := os.Remove(path); err != nil {
		return BoolValue(false), nil
	}
	return BoolValue(true), nil
}

func biExists(vm *VM, pc int, args []Value) (Value, error) {
	path := valueToString(arg(args, 0))
	_, err := os.Stat(path)
	return BoolValue(err == nil), nil
}

func biSleep(vm *VM, pc int, args []Value) (Value, error) {
	seconds := valueToNumber(arg(args, 0))
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return NumberValue(0), nil
}

func biExit(vm *VM, pc int, args []Value) (Value, error) {
	code := 0
	if len(args) > 0 {
		code = int(valueToNumber(args[0]))
	}
	return Void, &ExitSignal{Code: code}
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Void
}
