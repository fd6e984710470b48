package privacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/querylanguage"
)

// Decision sentinels returned by policy rules. Rules signal the
// outcome of their evaluation by returning one of these values,
// possibly wrapped with context through Allowf, Denyf or Skipf.
// Callers match them with errors.Is:
//
//	if errors.Is(err, privacy.Deny) { ... }
var (
	// Allow ends the rule chain and permits the request.
	Allow = errors.New("nexus/privacy: allow rule")

	// Deny ends the rule chain and rejects the request.
	Deny = errors.New("nexus/privacy: deny rule")

	// Skip abstains and passes evaluation to the next rule.
	Skip = errors.New("nexus/privacy: skip rule")
)

// Allowf wraps Allow with a formatted message.
func Allowf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Allow)...)
}

// Denyf wraps Deny with a formatted message, typically the reason the
// request was rejected.
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Deny)...)
}

// Skipf wraps Skip with a formatted message.
func Skipf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Skip)...)
}

// AlwaysAllowRule returns a rule that permits every page and lookup
// request.
func AlwaysAllowRule() Rule {
	return fixedDecision{Allow}
}

// AlwaysDenyRule returns a rule that rejects every page and lookup
// request. It is commonly placed last in a policy so that an
// otherwise undecided chain denies by default.
func AlwaysDenyRule() Rule {
	return fixedDecision{Deny}
}

// ContextRule creates a paginate/find rule from a context evaluation
// function. The provided function receives the context and should
// return Allow, Deny, Skip, or nil. Returning nil is equivalent to
// returning Skip.
func ContextRule(eval func(context.Context) error) Rule {
	return contextDecision{eval}
}

// Paginate describes one page request under policy evaluation. Rules
// may narrow Input.Condition before the storage paginator runs.
type Paginate struct {
	Collection *nexus.Collection
	Input      *nexus.PageInput
}

// Find describes one lookup request under policy evaluation.
type Find struct {
	Collection *nexus.Collection
	ID         string
}

type (
	// PaginateRule defines the interface deciding whether a
	// page request is allowed and optionally narrow it.
	PaginateRule interface {
		EvalPaginate(context.Context, Paginate) error
	}

	// PaginatePolicy combines multiple paginate rules into a single policy.
	PaginatePolicy []PaginateRule

	// FindRule defines the interface deciding whether a
	// lookup request is allowed.
	FindRule interface {
		EvalFind(context.Context, Find) error
	}

	// FindPolicy combines multiple find rules into a single policy.
	FindPolicy []FindRule

	// Rule is an interface which groups paginate and find rules.
	Rule interface {
		PaginateRule
		FindRule
	}
)

// PaginateRuleFunc type is an adapter which allows the use of
// ordinary functions as paginate rules.
type PaginateRuleFunc func(context.Context, Paginate) error

// EvalPaginate returns f(ctx, p).
func (f PaginateRuleFunc) EvalPaginate(ctx context.Context, p Paginate) error {
	return f(ctx, p)
}

// FindRuleFunc type is an adapter which allows the use of
// ordinary functions as find rules.
type FindRuleFunc func(context.Context, Find) error

// EvalFind returns f(ctx, fd).
func (f FindRuleFunc) EvalFind(ctx context.Context, fd Find) error {
	return f(ctx, fd)
}

// Policy groups paginate and find policies.
type Policy struct {
	Paginate PaginatePolicy
	Find     FindPolicy
}

// EvalPaginate forwards evaluation to the paginate policy.
func (p Policy) EvalPaginate(ctx context.Context, pg Paginate) error {
	return p.Paginate.EvalPaginate(ctx, pg)
}

// EvalFind forwards evaluation to the find policy.
func (p Policy) EvalFind(ctx context.Context, fd Find) error {
	return p.Find.EvalFind(ctx, fd)
}

// EvalPaginate evaluates a page request against a paginate policy.
// Rules run in order; the first decision other than Skip wins, and a
// chain exhausted by skips decides nothing.
func (policies PaginatePolicy) EvalPaginate(ctx context.Context, p Paginate) error {
	for _, policy := range policies {
		switch decision := policy.EvalPaginate(ctx, p); {
		case decision == nil || errors.Is(decision, Skip):
		default:
			return decision
		}
	}
	return nil
}

// EvalFind evaluates a lookup request against a find policy.
func (policies FindPolicy) EvalFind(ctx context.Context, fd Find) error {
	for _, policy := range policies {
		switch decision := policy.EvalFind(ctx, fd); {
		case decision == nil || errors.Is(decision, Skip):
		default:
			return decision
		}
	}
	return nil
}

type decisionCtxKey struct{}

// DecisionContext returns a context carrying a fixed policy decision.
// Wrapped paginators and finders honor the decision without running
// their rule chains. Skip and nil leave the parent unchanged.
func DecisionContext(parent context.Context, decision error) context.Context {
	if decision == nil || errors.Is(decision, Skip) {
		return parent
	}
	return context.WithValue(parent, decisionCtxKey{}, decision)
}

// DecisionFromContext reports the decision carried by the context, if
// any. An Allow decision is normalized to nil.
func DecisionFromContext(ctx context.Context) (error, bool) {
	decision, ok := ctx.Value(decisionCtxKey{}).(error)
	if ok && errors.Is(decision, Allow) {
		decision = nil
	}
	return decision, ok
}

type fixedDecision struct {
	decision error
}

func (f fixedDecision) EvalPaginate(context.Context, Paginate) error {
	return f.decision
}

func (f fixedDecision) EvalFind(context.Context, Find) error {
	return f.decision
}

type contextDecision struct {
	eval func(context.Context) error
}

func (c contextDecision) EvalPaginate(ctx context.Context, _ Paginate) error {
	return c.eval(ctx)
}

func (c contextDecision) EvalFind(ctx context.Context, _ Find) error {
	return c.eval(ctx)
}

// FilterFunc adapts an ordinary function into a paginate rule that
// narrows the request to the rows the viewer may see. The returned
// condition is AND-combined with the request's own; a nil condition
// leaves the request untouched. The rule always abstains from the
// decision:
//
//	privacy.FilterFunc(func(ctx context.Context, p privacy.Paginate) nexus.Condition {
//	    return querylanguage.FieldEQ("workspace_id", workspaceID)
//	})
type FilterFunc func(context.Context, Paginate) nexus.Condition

// EvalPaginate narrows the page request with f's condition and skips.
func (f FilterFunc) EvalPaginate(ctx context.Context, p Paginate) error {
	if cond := f(ctx, p); cond != nil {
		p.Input.Condition = querylanguage.And(p.Input.Condition, cond)
	}
	return Skip
}

var _ PaginateRule = FilterFunc(nil)

// Paginator wraps next so that every page request is evaluated against
// the policy first. Allow and an exhausted chain let the request
// through; any other decision aborts it. A decision carried by the
// context bypasses the policy entirely.
func Paginator(col *nexus.Collection, policy PaginateRule, next nexus.Paginator) nexus.Paginator {
	return nexus.PaginateFunc(func(ctx context.Context, input nexus.PageInput) (*nexus.Page, error) {
		if decision, ok := DecisionFromContext(ctx); ok {
			if decision != nil {
				return nil, decision
			}
			return next.Paginate(ctx, input)
		}
		switch err := policy.EvalPaginate(ctx, Paginate{Collection: col, Input: &input}); {
		case err == nil || errors.Is(err, Allow) || errors.Is(err, Skip):
			return next.Paginate(ctx, input)
		default:
			return nil, err
		}
	})
}

// Finder wraps next so that every lookup is evaluated against the
// policy first, with the same decision semantics as Paginator.
func Finder(col *nexus.Collection, policy FindRule, next nexus.FindFunc) nexus.FindFunc {
	return func(ctx context.Context, id string) (nexus.Value, error) {
		if decision, ok := DecisionFromContext(ctx); ok {
			if decision != nil {
				return nexus.Value{}, decision
			}
			return next(ctx, id)
		}
		switch err := policy.EvalFind(ctx, Find{Collection: col, ID: id}); {
		case err == nil || errors.Is(err, Allow) || errors.Is(err, Skip):
			return next(ctx, id)
		default:
			return nexus.Value{}, err
		}
	}
}

// Apply installs the policy on the collection by wrapping its paginator
// and finder. Capabilities the collection does not carry stay unset.
func Apply(col *nexus.Collection, policy Policy) *nexus.Collection {
	if p := col.Paginator(); p != nil {
		col.SetPaginator(Paginator(col, policy.Paginate, p))
	}
	if f := col.Find(); f != nil {
		col.SetFind(Finder(col, policy.Find, f))
	}
	return col
}
