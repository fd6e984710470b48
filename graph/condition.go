package graph

import (
	"fmt"
	"sort"

	"github.com/99designs/gqlgen/graphql"
	"github.com/syssam/nexus"
	"github.com/syssam/nexus/querylanguage"
)

// ResolveConditionType is the default ConditionResolver. The input
// type carries one entry per operator a declared field supports, plus
// the and, or and not composition fields nesting the type into
// itself. The returned parser coerces a raw argument map back into a
// condition, combining every present entry with a conjunction.
func ResolveConditionType(cx *Context, col *nexus.Collection) (*InputObject, FromInputFunc) {
	name := cx.cfg.Naming.TypeName(col.Name()) + "Condition"
	in := cx.namedType(name, func() Type {
		return newConditionInput(cx, col, name)
	}).(*InputObject)
	return in, conditionParser(cx, col)
}

func newConditionInput(cx *Context, col *nexus.Collection, name string) *InputObject {
	in := NewInputObject(name).
		SetDescription("Filters " + col.Name() + " values. Present entries are combined with a conjunction.")
	in.SetFieldsFunc(func() []*InputField {
		fields := []*InputField{
			{Name: "not", Type: in},
			{Name: "and", Type: NewList(in)},
			{Name: "or", Type: NewList(in)},
		}
		for _, f := range col.Fields() {
			ops := conditionOps(f)
			if len(ops) == 0 {
				continue
			}
			scalar, err := cx.cfg.Types.Resolve(cx, nexus.Type{Kind: f.Type.Kind}, true)
			if err != nil {
				continue
			}
			fieldName := cx.cfg.Naming.FieldName(f.Name)
			for _, op := range ops {
				fields = append(fields, &InputField{
					Name: fieldName + op.suffix,
					Type: op.argType(scalar),
				})
			}
		}
		return fields
	})
	return in
}

// conditionParser returns the argument parser matching the input type
// built for col. Field entries are consumed in declaration order so
// the resulting condition renders deterministically.
func conditionParser(cx *Context, col *nexus.Collection) FromInputFunc {
	var parse FromInputFunc
	parse = func(raw any) (nexus.Condition, error) {
		m, err := graphql.UnmarshalMap(raw)
		if err != nil {
			return nil, fmt.Errorf("graph: condition for %s: %w", col.Name(), err)
		}
		pending := make(map[string]any, len(m))
		for k, v := range m {
			pending[k] = v
		}
		var ps []querylanguage.P
		for _, f := range col.Fields() {
			fieldName := cx.cfg.Naming.FieldName(f.Name)
			for _, op := range conditionOps(f) {
				key := fieldName + op.suffix
				v, present := pending[key]
				if !present {
					continue
				}
				delete(pending, key)
				if v == nil {
					continue
				}
				p, err := op.pred(f, v)
				if err != nil {
					return nil, fmt.Errorf("graph: condition entry %q for %s: %w", key, col.Name(), err)
				}
				if p != nil {
					ps = append(ps, p)
				}
			}
		}
		if v, present := pending["not"]; present {
			delete(pending, "not")
			if v != nil {
				sub, err := parse(v)
				if err != nil {
					return nil, err
				}
				ps = append(ps, querylanguage.Not(sub))
			}
		}
		if v, present := pending["and"]; present {
			delete(pending, "and")
			subs, err := parseConditionList(v, parse)
			if err != nil {
				return nil, err
			}
			ps = append(ps, subs...)
		}
		if v, present := pending["or"]; present {
			delete(pending, "or")
			subs, err := parseConditionList(v, parse)
			if err != nil {
				return nil, err
			}
			switch len(subs) {
			case 0:
			case 1:
				ps = append(ps, subs[0])
			default:
				ps = append(ps, querylanguage.Or(subs[0], subs[1], subs[2:]...))
			}
		}
		if len(pending) > 0 {
			keys := make([]string, 0, len(pending))
			for k := range pending {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("graph: unknown condition entry %q for %s", keys[0], col.Name())
		}
		switch len(ps) {
		case 0:
			return querylanguage.True(), nil
		case 1:
			return ps[0], nil
		default:
			return querylanguage.And(ps[0], ps[1], ps[2:]...), nil
		}
	}
	return parse
}

func parseConditionList(raw any, parse FromInputFunc) ([]querylanguage.P, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}
	subs := make([]querylanguage.P, 0, len(items))
	for _, item := range items {
		sub, err := parse(item)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// condOp is one operator entry of a condition input: its name suffix,
// the argument type derived from the field scalar, and the predicate
// it parses into.
type condOp struct {
	suffix  string
	argType func(scalar Type) Type
	pred    func(f *nexus.Field, v any) (querylanguage.P, error)
}

func scalarArg(scalar Type) Type { return scalar }
func listArg(scalar Type) Type   { return NewList(scalar) }
func booleanArg(_ Type) Type     { return BooleanType }

func scalarPred(build func(name string, v any) querylanguage.P) func(*nexus.Field, any) (querylanguage.P, error) {
	return func(f *nexus.Field, v any) (querylanguage.P, error) {
		cv, err := coerceScalar(f.Type.Kind, v)
		if err != nil {
			return nil, err
		}
		return build(f.Name, cv), nil
	}
}

func listPred(build func(name string, vs ...any) querylanguage.P) func(*nexus.Field, any) (querylanguage.P, error) {
	return func(f *nexus.Field, v any) (querylanguage.P, error) {
		items, ok := v.([]any)
		if !ok {
			items = []any{v}
		}
		cvs := make([]any, len(items))
		for i, item := range items {
			cv, err := coerceScalar(f.Type.Kind, item)
			if err != nil {
				return nil, err
			}
			cvs[i] = cv
		}
		return build(f.Name, cvs...), nil
	}
}

func stringPred(build func(name, v string) querylanguage.P) func(*nexus.Field, any) (querylanguage.P, error) {
	return func(f *nexus.Field, v any) (querylanguage.P, error) {
		s, err := graphql.UnmarshalString(v)
		if err != nil {
			return nil, err
		}
		return build(f.Name, s), nil
	}
}

func nilPred(build func(name string) querylanguage.P) func(*nexus.Field, any) (querylanguage.P, error) {
	return func(f *nexus.Field, v any) (querylanguage.P, error) {
		apply, err := graphql.UnmarshalBoolean(v)
		if err != nil {
			return nil, err
		}
		if !apply {
			return nil, nil
		}
		return build(f.Name), nil
	}
}

var (
	opEQ           = condOp{suffix: "", argType: scalarArg, pred: scalarPred(querylanguage.FieldEQ)}
	opNEQ          = condOp{suffix: "NEQ", argType: scalarArg, pred: scalarPred(querylanguage.FieldNEQ)}
	opIn           = condOp{suffix: "In", argType: listArg, pred: listPred(querylanguage.FieldIn)}
	opNotIn        = condOp{suffix: "NotIn", argType: listArg, pred: listPred(querylanguage.FieldNotIn)}
	opGT           = condOp{suffix: "GT", argType: scalarArg, pred: scalarPred(querylanguage.FieldGT)}
	opGTE          = condOp{suffix: "GTE", argType: scalarArg, pred: scalarPred(querylanguage.FieldGTE)}
	opLT           = condOp{suffix: "LT", argType: scalarArg, pred: scalarPred(querylanguage.FieldLT)}
	opLTE          = condOp{suffix: "LTE", argType: scalarArg, pred: scalarPred(querylanguage.FieldLTE)}
	opContains     = condOp{suffix: "Contains", argType: scalarArg, pred: stringPred(querylanguage.FieldContains)}
	opContainsFold = condOp{suffix: "ContainsFold", argType: scalarArg, pred: stringPred(querylanguage.FieldContainsFold)}
	opEqualFold    = condOp{suffix: "EqualFold", argType: scalarArg, pred: stringPred(querylanguage.FieldEqualFold)}
	opHasPrefix    = condOp{suffix: "HasPrefix", argType: scalarArg, pred: stringPred(querylanguage.FieldHasPrefix)}
	opHasSuffix    = condOp{suffix: "HasSuffix", argType: scalarArg, pred: stringPred(querylanguage.FieldHasSuffix)}
	opIsNil        = condOp{suffix: "IsNil", argType: booleanArg, pred: nilPred(querylanguage.FieldNil)}
	opNotNil       = condOp{suffix: "NotNil", argType: booleanArg, pred: nilPred(querylanguage.FieldNotNil)}
)

// conditionOps returns the operator entries a declared field supports:
// equality and membership for every filterable kind, ordering for
// ordered kinds, matching for strings, and null checks for nullable
// fields. Reference, list, JSON and binary fields are not filterable.
func conditionOps(f *nexus.Field) []condOp {
	switch f.Type.Kind {
	case nexus.KindRef, nexus.KindList, nexus.KindJSON, nexus.KindBytes, nexus.KindInvalid:
		return nil
	}
	ops := []condOp{opEQ, opNEQ, opIn, opNotIn}
	if f.Type.Kind.Ordered() {
		ops = append(ops, opGT, opGTE, opLT, opLTE)
	}
	if f.Type.Kind == nexus.KindString {
		ops = append(ops, opContains, opContainsFold, opEqualFold, opHasPrefix, opHasSuffix)
	}
	if f.Type.Nullable {
		ops = append(ops, opIsNil, opNotNil)
	}
	return ops
}

// coerceScalar converts a raw argument value to the Go value matching
// the field kind.
func coerceScalar(kind nexus.Kind, v any) (any, error) {
	switch kind {
	case nexus.KindBool:
		return graphql.UnmarshalBoolean(v)
	case nexus.KindInt:
		return graphql.UnmarshalInt(v)
	case nexus.KindFloat:
		return graphql.UnmarshalFloat(v)
	case nexus.KindString:
		return graphql.UnmarshalString(v)
	case nexus.KindTime:
		return graphql.UnmarshalTime(v)
	case nexus.KindUUID:
		return graphql.UnmarshalUUID(v)
	default:
		return v, nil
	}
}
