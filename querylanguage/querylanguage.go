// Package querylanguage provides an expression language for describing
// filter conditions over collections dynamically. Predicates are plain
// expression trees: they can be composed, negated, printed, and
// compiled to storage-specific filters (see dialect/sql).
package querylanguage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// An Op represents a predicate operator.
type Op int

// Builtin operators.
const (
	OpAnd   Op = iota // logical and.
	OpOr              // logical or.
	OpNot             // logical negation.
	OpEQ              // =
	OpNEQ             // <>
	OpGT              // >
	OpGTE             // >=
	OpLT              // <
	OpLTE             // <=
	OpIn              // within
	OpNotIn           // without
)

var ops = [...]string{
	OpAnd:   "&&",
	OpOr:    "||",
	OpNot:   "!",
	OpEQ:    "==",
	OpNEQ:   "!=",
	OpGT:    ">",
	OpGTE:   ">=",
	OpLT:    "<",
	OpLTE:   "<=",
	OpIn:    "in",
	OpNotIn: "not in",
}

// String returns the text representation of an operator.
func (o Op) String() string {
	if o >= 0 && int(o) < len(ops) {
		return ops[o]
	}
	return "<invalid>"
}

// A Func represents a function expression.
type Func string

// Builtin functions.
const (
	FuncEqualFold    Func = "equal_fold"    // case-insensitive equality.
	FuncContains     Func = "contains"      // substring of the field value.
	FuncContainsFold Func = "contains_fold" // case-insensitive substring.
	FuncHasPrefix    Func = "has_prefix"    // field value prefix.
	FuncHasSuffix    Func = "has_suffix"    // field value suffix.
	FuncHasEdge      Func = "has_edge"      // flow traversal to an edge.
)

type (
	// Expr represents a node in an expression tree.
	Expr interface {
		fmt.Stringer
		expr()
	}

	// P represents a predicate expression, the only expression kind
	// that can stand on its own as a filter condition.
	P interface {
		Expr
		// Negate returns the negation of the predicate.
		Negate() P
	}
)

type (
	// Field is an expression for a field reference.
	Field struct {
		Name string
	}

	// Edge is an expression for an edge reference.
	Edge struct {
		Name string
	}

	// Value is an expression for a literal value.
	Value struct {
		V any
	}

	// UnaryExpr is a unary predicate expression.
	UnaryExpr struct {
		Op Op
		X  P
	}

	// BinaryExpr is a binary predicate expression.
	BinaryExpr struct {
		Op   Op
		X, Y Expr
	}

	// NaryExpr is a predicate expression with variable operands.
	NaryExpr struct {
		Op Op
		Ps []P
	}

	// CallExpr is a predicate function call.
	CallExpr struct {
		Func Func
		Args []Expr
	}
)

// F returns a field expression for the given name.
func F(name string) *Field {
	return &Field{Name: name}
}

// String returns the field name.
func (f *Field) String() string { return f.Name }

// String returns the edge name.
func (e *Edge) String() string { return e.Name }

// String returns the literal rendering of the value. Strings, byte
// slices and timestamps render the way encoding/json prints them.
func (v *Value) String() string {
	if v.V == nil {
		return "nil"
	}
	buf, err := json.Marshal(v.V)
	if err != nil {
		return fmt.Sprint(v.V)
	}
	return string(buf)
}

// String returns the text representation of a unary expression.
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.X)
}

// Negate returns the negation of the unary expression.
func (e *UnaryExpr) Negate() P { return Not(e) }

// String returns the text representation of a binary expression.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.X, e.Op, e.Y)
}

// Negate returns the negation of the binary expression.
func (e *BinaryExpr) Negate() P { return Not(e) }

// String returns the text representation of an n-ary expression.
// Expressions with more than two operands are parenthesized.
func (e *NaryExpr) String() string {
	var sb strings.Builder
	if len(e.Ps) > 2 {
		sb.WriteString("(")
	}
	for i, p := range e.Ps {
		if i > 0 {
			sb.WriteString(" " + e.Op.String() + " ")
		}
		sb.WriteString(p.String())
	}
	if len(e.Ps) > 2 {
		sb.WriteString(")")
	}
	return sb.String()
}

// Negate returns the negation of the n-ary expression.
func (e *NaryExpr) Negate() P { return Not(e) }

// String returns the text representation of a call expression.
func (e *CallExpr) String() string {
	var sb strings.Builder
	sb.WriteString(string(e.Func))
	sb.WriteString("(")
	for i, arg := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Negate returns the negation of the call expression.
func (e *CallExpr) Negate() P { return Not(e) }

type trueExpr struct{}

func (*trueExpr) String() string { return "true" }

// Negate returns the negation of the always-true predicate.
func (e *trueExpr) Negate() P { return Not(e) }

var truth = &trueExpr{}

// True returns the always-true predicate, the neutral element of And:
// combining any predicate with True yields that predicate unchanged.
func True() P { return truth }

// IsTrue reports whether p is the always-true predicate.
func IsTrue(p P) bool { return p == truth }

// And returns the conjunction of the given predicates. Nil and
// always-true operands are dropped; a conjunction of fewer than two
// remaining operands collapses to the single operand or to True.
func And(x, y P, z ...P) P {
	all := append([]P{x, y}, z...)
	ps := make([]P, 0, len(all))
	for _, p := range all {
		if p == nil || IsTrue(p) {
			continue
		}
		ps = append(ps, p)
	}
	switch len(ps) {
	case 0:
		return truth
	case 1:
		return ps[0]
	default:
		return &NaryExpr{Op: OpAnd, Ps: ps}
	}
}

// Or returns the disjunction of the given predicates. Nil operands are
// dropped; one always-true operand makes the whole disjunction true.
func Or(x, y P, z ...P) P {
	all := append([]P{x, y}, z...)
	ps := make([]P, 0, len(all))
	for _, p := range all {
		if p == nil {
			continue
		}
		if IsTrue(p) {
			return truth
		}
		ps = append(ps, p)
	}
	switch len(ps) {
	case 0:
		return truth
	case 1:
		return ps[0]
	default:
		return &NaryExpr{Op: OpOr, Ps: ps}
	}
}

// Not returns the negation of the given predicate.
func Not(x P) P {
	return &UnaryExpr{Op: OpNot, X: x}
}

// EQ returns an expression-level equality predicate.
func EQ(x, y Expr) P {
	return &BinaryExpr{Op: OpEQ, X: x, Y: y}
}

// NEQ returns an expression-level inequality predicate.
func NEQ(x, y Expr) P {
	return &BinaryExpr{Op: OpNEQ, X: x, Y: y}
}

// GT returns an expression-level greater-than predicate.
func GT(x, y Expr) P {
	return &BinaryExpr{Op: OpGT, X: x, Y: y}
}

// GTE returns an expression-level greater-than-or-equal predicate.
func GTE(x, y Expr) P {
	return &BinaryExpr{Op: OpGTE, X: x, Y: y}
}

// LT returns an expression-level less-than predicate.
func LT(x, y Expr) P {
	return &BinaryExpr{Op: OpLT, X: x, Y: y}
}

// LTE returns an expression-level less-than-or-equal predicate.
func LTE(x, y Expr) P {
	return &BinaryExpr{Op: OpLTE, X: x, Y: y}
}

// FieldEQ returns a predicate for checking that a field value is
// equal to the given value.
func FieldEQ(name string, v any) P {
	return EQ(F(name), &Value{V: v})
}

// FieldNEQ returns a predicate for checking that a field value is
// not equal to the given value.
func FieldNEQ(name string, v any) P {
	return NEQ(F(name), &Value{V: v})
}

// FieldGT returns a predicate for checking that a field value is
// greater than the given value.
func FieldGT(name string, v any) P {
	return GT(F(name), &Value{V: v})
}

// FieldGTE returns a predicate for checking that a field value is
// greater than or equal to the given value.
func FieldGTE(name string, v any) P {
	return GTE(F(name), &Value{V: v})
}

// FieldLT returns a predicate for checking that a field value is
// less than the given value.
func FieldLT(name string, v any) P {
	return LT(F(name), &Value{V: v})
}

// FieldLTE returns a predicate for checking that a field value is
// less than or equal to the given value.
func FieldLTE(name string, v any) P {
	return LTE(F(name), &Value{V: v})
}

// FieldIn returns a predicate for checking that a field value is
// within the given values.
func FieldIn(name string, vs ...any) P {
	return &BinaryExpr{Op: OpIn, X: F(name), Y: &Value{V: vs}}
}

// FieldNotIn returns a predicate for checking that a field value is
// not within the given values.
func FieldNotIn(name string, vs ...any) P {
	return &BinaryExpr{Op: OpNotIn, X: F(name), Y: &Value{V: vs}}
}

// FieldNil returns a predicate for checking that a field value is nil.
func FieldNil(name string) P {
	return EQ(F(name), &Value{V: nil})
}

// FieldNotNil returns a predicate for checking that a field value is
// not nil.
func FieldNotNil(name string) P {
	return NEQ(F(name), &Value{V: nil})
}

// FieldContains returns a predicate for checking that a field value
// contains the given substring.
func FieldContains(name, substr string) P {
	return &CallExpr{Func: FuncContains, Args: []Expr{F(name), &Value{V: substr}}}
}

// FieldContainsFold returns a predicate for checking that a field
// value contains the given substring under case folding.
func FieldContainsFold(name, substr string) P {
	return &CallExpr{Func: FuncContainsFold, Args: []Expr{F(name), &Value{V: substr}}}
}

// FieldEqualFold returns a predicate for checking that a field value
// equals the given string under case folding.
func FieldEqualFold(name, v string) P {
	return &CallExpr{Func: FuncEqualFold, Args: []Expr{F(name), &Value{V: v}}}
}

// FieldHasPrefix returns a predicate for checking that a field value
// starts with the given prefix.
func FieldHasPrefix(name, prefix string) P {
	return &CallExpr{Func: FuncHasPrefix, Args: []Expr{F(name), &Value{V: prefix}}}
}

// FieldHasSuffix returns a predicate for checking that a field value
// ends with the given suffix.
func FieldHasSuffix(name, suffix string) P {
	return &CallExpr{Func: FuncHasSuffix, Args: []Expr{F(name), &Value{V: suffix}}}
}

// HasEdge returns a predicate for checking that an entity has a
// non-empty edge with the given name.
func HasEdge(name string) P {
	return &CallExpr{Func: FuncHasEdge, Args: []Expr{&Edge{Name: name}}}
}

// HasEdgeWith returns a predicate for checking that the values over
// the given edge satisfy all given predicates.
func HasEdgeWith(name string, ps ...P) P {
	args := []Expr{&Edge{Name: name}}
	for _, p := range ps {
		args = append(args, p)
	}
	return &CallExpr{Func: FuncHasEdge, Args: args}
}

func (*Field) expr()      {}
func (*Edge) expr()       {}
func (*Value) expr()      {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}
func (*NaryExpr) expr()   {}
func (*CallExpr) expr()   {}
func (*trueExpr) expr()   {}
