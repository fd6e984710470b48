package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/nexus/dialect"
	"github.com/syssam/nexus/querylanguage"
)

// CompileWhere translates a condition into a parameterized SQL WHERE
// fragment for the given dialect. Column references are qualified with
// table when it is non-empty. A nil or always-true condition compiles
// to the empty fragment, meaning no filtering.
//
// Example:
//
//	frag, args, err := sql.CompileWhere(dialect.Postgres, "users",
//	    querylanguage.FieldHasPrefix("name", "a"),
//	)
//	// frag: `"users"."name" LIKE $1`
//	// args: []any{"a%"}
func CompileWhere(dialect, table string, cond querylanguage.P) (string, []any, error) {
	if cond == nil || querylanguage.IsTrue(cond) {
		return "", nil, nil
	}
	if table != "" && !isValidIdentifier(table) {
		return "", nil, fmt.Errorf("dialect/sql: compile: invalid table name %q", table)
	}
	c := &whereCompiler{dialect: dialect, table: table}
	if err := c.compile(cond, false); err != nil {
		return "", nil, err
	}
	return c.sb.String(), c.args, nil
}

// whereCompiler walks a predicate tree and renders it as SQL, collecting
// bound arguments along the way.
type whereCompiler struct {
	dialect string
	table   string
	sb      strings.Builder
	args    []any
}

// compile renders one predicate node. Nested n-ary expressions are
// parenthesized; the top-level fragment is not.
func (c *whereCompiler) compile(p querylanguage.P, nested bool) error {
	switch p := p.(type) {
	case *querylanguage.NaryExpr:
		return c.nary(p, nested)
	case *querylanguage.UnaryExpr:
		if p.Op != querylanguage.OpNot {
			return fmt.Errorf("dialect/sql: compile: unexpected unary operator %q", p.Op)
		}
		c.sb.WriteString("NOT (")
		if err := c.compile(p.X, false); err != nil {
			return err
		}
		c.sb.WriteString(")")
		return nil
	case *querylanguage.BinaryExpr:
		return c.binary(p)
	case *querylanguage.CallExpr:
		return c.call(p)
	default:
		if querylanguage.IsTrue(p) {
			c.sb.WriteString("TRUE")
			return nil
		}
		return fmt.Errorf("dialect/sql: compile: unsupported predicate %T", p)
	}
}

func (c *whereCompiler) nary(e *querylanguage.NaryExpr, nested bool) error {
	var join string
	switch e.Op {
	case querylanguage.OpAnd:
		join = " AND "
	case querylanguage.OpOr:
		join = " OR "
	default:
		return fmt.Errorf("dialect/sql: compile: unexpected n-ary operator %q", e.Op)
	}
	if len(e.Ps) == 0 {
		return fmt.Errorf("dialect/sql: compile: empty %q expression", e.Op)
	}
	if nested {
		c.sb.WriteString("(")
	}
	for i, sub := range e.Ps {
		if i > 0 {
			c.sb.WriteString(join)
		}
		if err := c.compile(sub, true); err != nil {
			return err
		}
	}
	if nested {
		c.sb.WriteString(")")
	}
	return nil
}

func (c *whereCompiler) binary(e *querylanguage.BinaryExpr) error {
	left, err := c.column(e.X)
	if err != nil {
		return err
	}
	switch e.Op {
	case querylanguage.OpEQ, querylanguage.OpNEQ, querylanguage.OpGT,
		querylanguage.OpGTE, querylanguage.OpLT, querylanguage.OpLTE:
		// Field-to-field comparison needs no bound argument.
		if f, ok := e.Y.(*querylanguage.Field); ok {
			right, err := c.column(f)
			if err != nil {
				return err
			}
			c.sb.WriteString(left + " " + sqlOp(e.Op) + " " + right)
			return nil
		}
		v, ok := e.Y.(*querylanguage.Value)
		if !ok {
			return fmt.Errorf("dialect/sql: compile: operator %q expects a field or value operand, got %T", e.Op, e.Y)
		}
		if v.V == nil {
			switch e.Op {
			case querylanguage.OpEQ:
				c.sb.WriteString(left + " IS NULL")
			case querylanguage.OpNEQ:
				c.sb.WriteString(left + " IS NOT NULL")
			default:
				return fmt.Errorf("dialect/sql: compile: nil value with operator %q", e.Op)
			}
			return nil
		}
		c.sb.WriteString(left + " " + sqlOp(e.Op) + " " + c.placeholder(v.V))
		return nil
	case querylanguage.OpIn, querylanguage.OpNotIn:
		v, ok := e.Y.(*querylanguage.Value)
		if !ok {
			return fmt.Errorf("dialect/sql: compile: operator %q expects a value operand, got %T", e.Op, e.Y)
		}
		vs, ok := v.V.([]any)
		if !ok {
			return fmt.Errorf("dialect/sql: compile: operator %q expects a list value, got %T", e.Op, v.V)
		}
		// An empty list matches nothing, and its negation everything.
		if len(vs) == 0 {
			if e.Op == querylanguage.OpIn {
				c.sb.WriteString("FALSE")
			} else {
				c.sb.WriteString("TRUE")
			}
			return nil
		}
		c.sb.WriteString(left)
		if e.Op == querylanguage.OpNotIn {
			c.sb.WriteString(" NOT")
		}
		c.sb.WriteString(" IN (")
		for i, item := range vs {
			if i > 0 {
				c.sb.WriteString(", ")
			}
			c.sb.WriteString(c.placeholder(item))
		}
		c.sb.WriteString(")")
		return nil
	default:
		return fmt.Errorf("dialect/sql: compile: unexpected binary operator %q", e.Op)
	}
}

func (c *whereCompiler) call(e *querylanguage.CallExpr) error {
	if e.Func == querylanguage.FuncHasEdge {
		return fmt.Errorf("dialect/sql: compile: edge predicate %q requires relation context", e)
	}
	if len(e.Args) != 2 {
		return fmt.Errorf("dialect/sql: compile: function %q expects a field and a value", e.Func)
	}
	col, err := c.column(e.Args[0])
	if err != nil {
		return err
	}
	v, ok := e.Args[1].(*querylanguage.Value)
	if !ok {
		return fmt.Errorf("dialect/sql: compile: function %q expects a value argument, got %T", e.Func, e.Args[1])
	}
	s, ok := v.V.(string)
	if !ok {
		return fmt.Errorf("dialect/sql: compile: function %q expects a string value, got %T", e.Func, v.V)
	}
	switch e.Func {
	case querylanguage.FuncContains:
		c.sb.WriteString(col + " LIKE " + c.placeholder("%"+s+"%"))
	case querylanguage.FuncHasPrefix:
		c.sb.WriteString(col + " LIKE " + c.placeholder(s+"%"))
	case querylanguage.FuncHasSuffix:
		c.sb.WriteString(col + " LIKE " + c.placeholder("%"+s))
	case querylanguage.FuncEqualFold:
		c.sb.WriteString("LOWER(" + col + ") = " + c.placeholder(strings.ToLower(s)))
	case querylanguage.FuncContainsFold:
		c.sb.WriteString("LOWER(" + col + ") LIKE " + c.placeholder("%"+strings.ToLower(s)+"%"))
	default:
		return fmt.Errorf("dialect/sql: compile: unknown function %q", e.Func)
	}
	return nil
}

// column renders a field expression as a quoted, optionally
// table-qualified column reference.
func (c *whereCompiler) column(x querylanguage.Expr) (string, error) {
	f, ok := x.(*querylanguage.Field)
	if !ok {
		return "", fmt.Errorf("dialect/sql: compile: expected a field reference, got %T", x)
	}
	if !isValidIdentifier(f.Name) {
		return "", fmt.Errorf("dialect/sql: compile: invalid column name %q", f.Name)
	}
	col := quoteIdent(c.dialect, f.Name)
	if c.table != "" {
		return quoteIdent(c.dialect, c.table) + "." + col, nil
	}
	return col, nil
}

// placeholder binds v as a query argument and returns its placeholder
// token, numbered for PostgreSQL and positional otherwise.
func (c *whereCompiler) placeholder(v any) string {
	c.args = append(c.args, v)
	if c.dialect == dialect.Postgres {
		return fmt.Sprintf("$%d", len(c.args))
	}
	return "?"
}

func quoteIdent(d, name string) string {
	if d == dialect.Postgres {
		return `"` + name + `"`
	}
	return "`" + name + "`"
}

func sqlOp(op querylanguage.Op) string {
	switch op {
	case querylanguage.OpEQ:
		return "="
	case querylanguage.OpNEQ:
		return "<>"
	case querylanguage.OpGT:
		return ">"
	case querylanguage.OpGTE:
		return ">="
	case querylanguage.OpLT:
		return "<"
	case querylanguage.OpLTE:
		return "<="
	default:
		return op.String()
	}
}
