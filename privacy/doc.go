// Package privacy provides an access-policy layer for collections.
//
// Policies evaluate before page and lookup requests reach the storage
// layer. A policy wraps a collection's paginator and finder, so access
// control lives next to the collection definition instead of being
// scattered over resolvers.
//
// # Rules and Policies
//
// A policy is an ordered rule chain. Each rule returns Allow, Deny or
// Skip: Allow and Deny stop evaluation with that decision, Skip hands
// over to the next rule. A chain exhausted by skips decides nothing
// and the request proceeds. End the policy with AlwaysDenyRule() to
// deny by default. Policies are installed with Apply:
//
//	privacy.Apply(users, privacy.Policy{
//	    Paginate: privacy.PaginatePolicy{
//	        privacy.HasRole("admin"),     // admins see everything
//	        privacy.OwnerRule("user_id"), // everyone else their own rows
//	    },
//	    Find: privacy.FindPolicy{
//	        privacy.DenyIfNoViewer(),
//	    },
//	})
//
// # Viewers
//
// Rules identify the requester through the Viewer attached to the
// context. Applications implement Viewer on their own session type or
// use SimpleViewer:
//
//	ctx := privacy.WithViewer(ctx, &privacy.SimpleViewer{
//	    UserID: "author-7",
//	    Roles:  []string{"editor"},
//	})
//	page, err := users.Paginator().Paginate(ctx, input)
//
// # Filtering
//
// Paginate rules receive the page request and may narrow its condition
// before the storage paginator runs. OwnerRule and TenantRule are
// built on this; FilterFunc adapts arbitrary narrowing functions:
//
//	privacy.FilterFunc(func(ctx context.Context, p privacy.Paginate) nexus.Condition {
//	    return querylanguage.FieldEQ("workspace_id", workspaceFromContext(ctx))
//	})
//
// # Bypassing Policies
//
// A decision placed on the context with DecisionContext skips policy
// evaluation entirely, which is useful for internal jobs and tests:
//
//	ctx := privacy.DecisionContext(ctx, privacy.Allow)
package privacy
