package privacy

import (
	"context"
	"slices"

	"github.com/syssam/nexus/querylanguage"
)

// Viewer identifies who is issuing a request. Applications implement
// it on their session or token type and attach it with WithViewer.
type Viewer interface {
	// GetID returns the viewer identifier, matched by OwnerRule.
	GetID() string
	// GetRoles returns the viewer role names.
	GetRoles() []string
	// GetTenantID returns the viewer tenant. Empty when the
	// application is not multi-tenant.
	GetTenantID() string
}

type viewerCtxKey struct{}

// WithViewer attaches viewer to the context.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	return context.WithValue(ctx, viewerCtxKey{}, viewer)
}

// ViewerFromContext returns the attached viewer, or nil when the
// request is anonymous.
func ViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerCtxKey{}).(Viewer)
	return v
}

// SimpleViewer is a plain struct Viewer for tests and small services.
type SimpleViewer struct {
	UserID   string
	Roles    []string
	TenantID string
}

func (v *SimpleViewer) GetID() string       { return v.UserID }
func (v *SimpleViewer) GetRoles() []string  { return v.Roles }
func (v *SimpleViewer) GetTenantID() string { return v.TenantID }

// DenyIfNoViewer denies the request outright when no viewer is
// attached. Place it first in a policy to require authentication.
//
//	privacy.FindPolicy{
//	    privacy.DenyIfNoViewer(),
//	    privacy.HasRole("admin"),
//	    privacy.AlwaysDenyRule(),
//	}
func DenyIfNoViewer() Rule {
	return ContextRule(func(ctx context.Context) error {
		if ViewerFromContext(ctx) == nil {
			return Denyf("privacy: viewer required")
		}
		return Skip
	})
}

// HasRole allows the request when the viewer carries the given role
// and skips to the next rule otherwise.
func HasRole(role string) Rule {
	return HasAnyRole(role)
}

// HasAnyRole allows the request when the viewer carries at least one
// of the given roles and skips to the next rule otherwise. Anonymous
// requests skip as well, pair it with DenyIfNoViewer or a closing
// AlwaysDenyRule.
//
//	privacy.FindPolicy{
//	    privacy.DenyIfNoViewer(),
//	    privacy.HasAnyRole("admin", "moderator"),
//	    privacy.AlwaysDenyRule(),
//	}
func HasAnyRole(roles ...string) Rule {
	return ContextRule(func(ctx context.Context) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		held := viewer.GetRoles()
		if slices.ContainsFunc(roles, func(r string) bool {
			return slices.Contains(held, r)
		}) {
			return Allow
		}
		return Skip
	})
}

// OwnerRule narrows page requests to rows owned by the viewer by
// matching the given column against the viewer identifier. Requests
// without a viewer are denied.
//
//	privacy.PaginatePolicy{
//	    privacy.OwnerRule("user_id"),
//	}
func OwnerRule(field string) PaginateRule {
	return PaginateRuleFunc(func(ctx context.Context, p Paginate) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Denyf("privacy: viewer required for owner-filtered query")
		}
		p.Input.Condition = querylanguage.And(
			p.Input.Condition,
			querylanguage.FieldEQ(field, viewer.GetID()),
		)
		return Skip
	})
}

// TenantRule narrows page requests to the viewer tenant by matching
// the given column against the viewer tenant identifier. Requests
// without a viewer or without a tenant are denied.
//
//	privacy.PaginatePolicy{
//	    privacy.TenantRule("tenant_id"),
//	}
func TenantRule(field string) PaginateRule {
	return PaginateRuleFunc(func(ctx context.Context, p Paginate) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Denyf("privacy: viewer required for tenant-filtered query")
		}
		tenant := viewer.GetTenantID()
		if tenant == "" {
			return Denyf("privacy: tenant required")
		}
		p.Input.Condition = querylanguage.And(
			p.Input.Condition,
			querylanguage.FieldEQ(field, tenant),
		)
		return Skip
	})
}
