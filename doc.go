// Package nexus defines the relational collection model that the rest
// of the module projects into a runtime API type graph.
//
// A Collection describes one table-like entity: an ordered list of
// fields, an optional primary key, an optional Paginator for listing
// its values, and optional capabilities (shape check, identifier
// lookup). A Relation is a directed link from a head collection (the
// one side) to a tail collection (the many side). A Registry gathers
// all collections and relations of one data model.
//
// # Collections
//
// Collections are built once and read afterwards:
//
//	user := nexus.NewCollection("user").
//		SetDescription("A registered account.").
//		AddFields(
//			&nexus.Field{Name: "id", Type: nexus.Int()},
//			&nexus.Field{Name: "name", Type: nexus.String()},
//		)
//	user.SetKey(user.Field("id"))
//
// Collection identity is pointer identity: the graph package produces
// exactly one API type per *Collection per build context.
//
// # Relations
//
// A relation that should surface as a head-side connection field must
// carry a Condition capability, deriving a tail filter from a concrete
// head value:
//
//	rel := &nexus.Relation{
//		Name:    "posts",
//		Rel:     nexus.O2M,
//		Head:    user,
//		HeadKey: user.Key(),
//		Tail:    post,
//		Condition: func(head nexus.Value) nexus.Condition {
//			return querylanguage.FieldEQ("author_id", head.Get("id"))
//		},
//	}
//
// Relations missing the capability, or whose tail collection has no
// paginator, are silently omitted from the generated type. Partial
// relation support is expected, not an error.
//
// # Values
//
// Value is the opaque runtime representation of one entity row: a raw
// record plus optional origin provenance. The generic node lookup tags
// the values it returns with the collection it loaded them from, and
// generated type predicates refuse values tagged for a different
// collection.
//
// The graph subpackage builds the memoized, lazily evaluated type
// graph; dialect/sql implements Paginator over a SQL table; load reads
// registries from YAML manifests; inspect derives them from a live
// database schema.
package nexus
