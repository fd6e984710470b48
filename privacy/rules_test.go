package privacy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/privacy"
	"github.com/syssam/nexus/querylanguage"
)

// TestViewerContext tests attaching and reading viewers.
func TestViewerContext(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		viewer := &privacy.SimpleViewer{
			UserID:   "author-7",
			Roles:    []string{"editor", "ops"},
			TenantID: "blue",
		}
		ctx := privacy.WithViewer(context.Background(), viewer)

		got := privacy.ViewerFromContext(ctx)
		require.NotNil(t, got)
		assert.Equal(t, "author-7", got.GetID())
		assert.Equal(t, []string{"editor", "ops"}, got.GetRoles())
		assert.Equal(t, "blue", got.GetTenantID())
	})

	t.Run("anonymous_context_yields_nil", func(t *testing.T) {
		assert.Nil(t, privacy.ViewerFromContext(context.Background()))
	})

	t.Run("foreign_context_values_are_ignored", func(t *testing.T) {
		type otherKey struct{}
		ctx := context.WithValue(context.Background(), otherKey{}, "not a viewer")
		assert.Nil(t, privacy.ViewerFromContext(ctx))
	})
}

// TestDenyIfNoViewer tests the authentication gate.
func TestDenyIfNoViewer(t *testing.T) {
	rule := privacy.DenyIfNoViewer()

	t.Run("denies_anonymous_requests", func(t *testing.T) {
		err := rule.EvalPaginate(context.Background(), pageRequest())
		assert.True(t, errors.Is(err, privacy.Deny))

		err = rule.EvalFind(context.Background(), findRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
	})

	t.Run("skips_for_authenticated_requests", func(t *testing.T) {
		ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "author-7"})

		err := rule.EvalPaginate(ctx, pageRequest())
		assert.True(t, errors.Is(err, privacy.Skip))

		err = rule.EvalFind(ctx, findRequest())
		assert.True(t, errors.Is(err, privacy.Skip))
	})
}

// TestRoleRules tests HasRole and HasAnyRole against both request
// kinds.
func TestRoleRules(t *testing.T) {
	tests := []struct {
		name   string
		rule   privacy.Rule
		viewer *privacy.SimpleViewer
		want   error
	}{
		{
			name:   "role_held",
			rule:   privacy.HasRole("ops"),
			viewer: &privacy.SimpleViewer{UserID: "u1", Roles: []string{"editor", "ops"}},
			want:   privacy.Allow,
		},
		{
			name:   "role_missing",
			rule:   privacy.HasRole("billing"),
			viewer: &privacy.SimpleViewer{UserID: "u1", Roles: []string{"editor", "ops"}},
			want:   privacy.Skip,
		},
		{
			name:   "role_anonymous",
			rule:   privacy.HasRole("ops"),
			viewer: nil,
			want:   privacy.Skip,
		},
		{
			name:   "role_no_roles_at_all",
			rule:   privacy.HasRole("ops"),
			viewer: &privacy.SimpleViewer{UserID: "u1"},
			want:   privacy.Skip,
		},
		{
			name:   "any_first_matches",
			rule:   privacy.HasAnyRole("editor", "ops"),
			viewer: &privacy.SimpleViewer{UserID: "u1", Roles: []string{"editor"}},
			want:   privacy.Allow,
		},
		{
			name:   "any_later_matches",
			rule:   privacy.HasAnyRole("billing", "ops"),
			viewer: &privacy.SimpleViewer{UserID: "u1", Roles: []string{"ops"}},
			want:   privacy.Allow,
		},
		{
			name:   "any_none_match",
			rule:   privacy.HasAnyRole("billing", "support"),
			viewer: &privacy.SimpleViewer{UserID: "u1", Roles: []string{"editor", "ops"}},
			want:   privacy.Skip,
		},
		{
			name:   "any_anonymous",
			rule:   privacy.HasAnyRole("ops"),
			viewer: nil,
			want:   privacy.Skip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.viewer != nil {
				ctx = privacy.WithViewer(ctx, tt.viewer)
			}

			err := tt.rule.EvalPaginate(ctx, pageRequest())
			assert.True(t, errors.Is(err, tt.want))

			err = tt.rule.EvalFind(ctx, findRequest())
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

// TestOwnerRule tests owner-based row narrowing.
func TestOwnerRule(t *testing.T) {
	rule := privacy.OwnerRule("user_id")

	t.Run("denies_anonymous_requests", func(t *testing.T) {
		err := rule.EvalPaginate(context.Background(), pageRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
	})

	t.Run("narrows_to_viewer_rows", func(t *testing.T) {
		ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "author-7"})

		p := pageRequest()
		err := rule.EvalPaginate(ctx, p)
		assert.True(t, errors.Is(err, privacy.Skip))
		require.NotNil(t, p.Input.Condition)
		assert.Equal(t, `user_id == "author-7"`, p.Input.Condition.String())
	})

	t.Run("keeps_the_request_condition", func(t *testing.T) {
		ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "author-7"})

		p := pageRequest()
		p.Input.Condition = querylanguage.FieldEQ("published", true)
		err := rule.EvalPaginate(ctx, p)
		assert.True(t, errors.Is(err, privacy.Skip))
		assert.Equal(t, `published == true && user_id == "author-7"`, p.Input.Condition.String())
	})
}

// TestTenantRule tests tenant isolation.
func TestTenantRule(t *testing.T) {
	rule := privacy.TenantRule("tenant_id")

	t.Run("denies_anonymous_requests", func(t *testing.T) {
		err := rule.EvalPaginate(context.Background(), pageRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
	})

	t.Run("denies_viewer_without_tenant", func(t *testing.T) {
		ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "author-7"})

		err := rule.EvalPaginate(ctx, pageRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
		assert.Contains(t, err.Error(), "tenant required")
	})

	t.Run("narrows_to_viewer_tenant", func(t *testing.T) {
		viewer := &privacy.SimpleViewer{UserID: "author-7", TenantID: "blue"}
		ctx := privacy.WithViewer(context.Background(), viewer)

		p := pageRequest()
		err := rule.EvalPaginate(ctx, p)
		assert.True(t, errors.Is(err, privacy.Skip))
		require.NotNil(t, p.Input.Condition)
		assert.Equal(t, `tenant_id == "blue"`, p.Input.Condition.String())
	})
}

// TestIntegratedPolicyChain tests rules combined in a policy chain.
func TestIntegratedPolicyChain(t *testing.T) {
	adminOnly := privacy.FindPolicy{
		privacy.DenyIfNoViewer(),
		privacy.HasRole("admin"),
		privacy.AlwaysDenyRule(),
	}

	t.Run("admin_allowed_through_role", func(t *testing.T) {
		viewer := &privacy.SimpleViewer{UserID: "admin-1", Roles: []string{"admin"}}
		ctx := privacy.WithViewer(context.Background(), viewer)

		err := adminOnly.EvalFind(ctx, findRequest())
		assert.True(t, errors.Is(err, privacy.Allow))
	})

	t.Run("user_denied_without_admin_role", func(t *testing.T) {
		viewer := &privacy.SimpleViewer{UserID: "author-7", Roles: []string{"editor"}}
		ctx := privacy.WithViewer(context.Background(), viewer)

		err := adminOnly.EvalFind(ctx, findRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
	})

	t.Run("unauthenticated_denied", func(t *testing.T) {
		err := adminOnly.EvalFind(context.Background(), findRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
	})

	t.Run("admins_page_unfiltered_others_narrowed", func(t *testing.T) {
		policy := privacy.PaginatePolicy{
			privacy.HasRole("admin"),
			privacy.OwnerRule("user_id"),
		}

		admin := &privacy.SimpleViewer{UserID: "admin-1", Roles: []string{"admin"}}
		ctx := privacy.WithViewer(context.Background(), admin)
		p := pageRequest()
		err := policy.EvalPaginate(ctx, p)
		assert.True(t, errors.Is(err, privacy.Allow))
		assert.Nil(t, p.Input.Condition)

		author := &privacy.SimpleViewer{UserID: "author-7", Roles: []string{"editor"}}
		ctx = privacy.WithViewer(context.Background(), author)
		p = pageRequest()
		err = policy.EvalPaginate(ctx, p)
		assert.NoError(t, err)
		require.NotNil(t, p.Input.Condition)
		assert.Equal(t, `user_id == "author-7"`, p.Input.Condition.String())
	})

	t.Run("tenant_isolation", func(t *testing.T) {
		policy := privacy.PaginatePolicy{
			privacy.DenyIfNoViewer(),
			privacy.TenantRule("tenant_id"),
		}

		viewer := &privacy.SimpleViewer{UserID: "author-7", TenantID: "blue"}
		ctx := privacy.WithViewer(context.Background(), viewer)
		p := pageRequest()
		err := policy.EvalPaginate(ctx, p)
		assert.NoError(t, err)
		require.NotNil(t, p.Input.Condition)
		assert.Equal(t, `tenant_id == "blue"`, p.Input.Condition.String())

		// no tenant, no rows
		viewer = &privacy.SimpleViewer{UserID: "author-8"}
		ctx = privacy.WithViewer(context.Background(), viewer)
		err = policy.EvalPaginate(ctx, pageRequest())
		assert.True(t, errors.Is(err, privacy.Deny))
	})
}

// BenchmarkRules benchmarks privacy rule evaluation.
func BenchmarkRules(b *testing.B) {
	viewer := &privacy.SimpleViewer{
		UserID:   "author-7",
		Roles:    []string{"editor", "ops"},
		TenantID: "blue",
	}
	ctx := privacy.WithViewer(context.Background(), viewer)
	ctxNoViewer := context.Background()
	col := nexus.NewCollection("user")
	fd := privacy.Find{Collection: col, ID: "1"}

	b.Run("DenyIfNoViewer_with_viewer", func(b *testing.B) {
		rule := privacy.DenyIfNoViewer()
		for i := 0; i < b.N; i++ {
			_ = rule.EvalFind(ctx, fd)
		}
	})

	b.Run("DenyIfNoViewer_without_viewer", func(b *testing.B) {
		rule := privacy.DenyIfNoViewer()
		for i := 0; i < b.N; i++ {
			_ = rule.EvalFind(ctxNoViewer, fd)
		}
	})

	b.Run("HasRole", func(b *testing.B) {
		rule := privacy.HasRole("ops")
		for i := 0; i < b.N; i++ {
			_ = rule.EvalFind(ctx, fd)
		}
	})

	b.Run("HasAnyRole_3_roles", func(b *testing.B) {
		rule := privacy.HasAnyRole("billing", "support", "ops")
		for i := 0; i < b.N; i++ {
			_ = rule.EvalFind(ctx, fd)
		}
	})

	b.Run("OwnerRule", func(b *testing.B) {
		rule := privacy.OwnerRule("user_id")
		for i := 0; i < b.N; i++ {
			p := privacy.Paginate{Collection: col, Input: &nexus.PageInput{}}
			_ = rule.EvalPaginate(ctx, p)
		}
	})

	b.Run("PolicyChain_5_rules", func(b *testing.B) {
		policy := privacy.FindPolicy{
			privacy.DenyIfNoViewer(),
			privacy.HasRole("billing"),
			privacy.HasAnyRole("support", "audit"),
			privacy.HasRole("ops"),
			privacy.AlwaysDenyRule(),
		}
		for i := 0; i < b.N; i++ {
			_ = policy.EvalFind(ctx, fd)
		}
	})
}
