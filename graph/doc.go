// Package graph derives API object types from collection metadata.
//
// This package is responsible for turning the collections and relations
// of a registry into a graph of output types: one object type per
// collection, connection fields for its relations, filter-condition
// input types, and a node lookup keyed by global identifiers. It
// serves as the bridge between the relational model and the exposed
// schema.
//
// # Build Context
//
// All type derivation happens through a Context, which pairs the
// configured policies with a memoization cache:
//
//	registry := nexus.NewRegistry()
//	registry.AddCollections(users, posts)
//	registry.AddRelations(authored)
//
//	cx := graph.NewContext(registry)
//	userType := graph.CollectionType(cx, users)
//
// Requesting the same collection twice returns the same type handle:
//
//	graph.CollectionType(cx, users) == userType // true
//
// # Cycle Safety
//
// The cache is filled before a type's fields are realized, and field
// lists stay deferred until first forced:
//
//	fields, err := userType.Fields() // forces the field thunk
//
// Collections that reference each other therefore resolve to stable
// handles instead of recursing: while the thunk of one type runs, the
// types it refers to are served from the cache as shells.
//
// # Field Assembly
//
// The field list of a collection type is assembled in a fixed order:
//
//   - the identifier field, when the collection declares a key
//   - one field per declared collection field
//   - fields contributed by the ObjectFields hook
//   - tail-side relation fields
//   - head-side connection fields, one per supported relation
//
// A relation whose tail has no paginator, or which derives no
// condition, contributes no connection field.
//
// # Conditions
//
// Connection fields accept a condition argument typed per collection.
// Parsed conditions compose with the relation's own constraint by
// conjunction before they reach the paginator:
//
//	posts(condition: {titleContains: "go"}, first: 10)
//
// # Schema Export
//
// The full schema is exported as a gqlparser ast and rendered as SDL:
//
//	s, err := graph.Schema(cx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(graph.FormatSDL(s))
//
// # Naming Conventions
//
// Exposed type and field names are derived with the package's casing
// helpers:
//
//	graph.Pascal("blog_post")  // "BlogPost"
//	graph.Camel("author_id")   // "authorID"
//	graph.Snake("PageInfo")    // "page_info"
//	graph.Plural("category")   // "categories"
package graph
