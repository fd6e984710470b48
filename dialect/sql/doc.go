// Package sql implements the dialect interfaces on top of database/sql
// and builds collection storage capabilities over them.
//
// The package covers four concerns: executing statements through a
// dialect-aware driver, compiling filter conditions to parameterized
// WHERE clauses, paging and loading table rows as collection values,
// and normalizing driver-specific constraint violations.
//
// # Driver
//
// Open connects to a database and returns a dialect.Driver:
//
//	import (
//	    "github.com/syssam/nexus/dialect"
//	    "github.com/syssam/nexus/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// Session variables can be attached to a context and are set before
// every statement, which is how per-request settings such as row-level
// security parameters reach the database:
//
//	ctx = sql.WithVar(ctx, "app.tenant_id", tenant)
//
// # Condition Compilation
//
// CompileWhere translates querylanguage predicates into parameterized
// SQL for the driver's dialect:
//
//	frag, args, _ := sql.CompileWhere(dialect.Postgres, "users",
//	    querylanguage.And(
//	        querylanguage.FieldEQ("status", "active"),
//	        querylanguage.FieldHasPrefix("name", "a"),
//	    ),
//	)
//	// frag: `"users"."status" = $1 AND "users"."name" LIKE $2`
//	// args: []any{"active", "a%"}
//
// # Pagination and Lookup
//
// NewPaginator and NewFinder attach storage capabilities to
// collections. The paginator serves offset windows with an optional
// page cache; the finder loads single rows by key for global
// identifier resolution:
//
//	posts := nexus.NewCollection("posts").
//	    SetPaginator(sql.NewPaginator(drv, "posts", sql.WithOrderBy("id"))).
//	    SetFind(sql.NewFinder(drv, "posts", "id").Find)
//
// # Observability
//
// NewStatsDriver wraps a driver with query statistics and slow query
// detection; NewDebugDriver logs every statement. Statements are only
// counted when they run through the wrapper:
//
//	stats := sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(),
//	)
//	posts := sql.NewPaginator(stats, "posts")
//
// # Constraint Errors
//
// Exec normalizes unique, foreign key and check violations reported by
// the PostgreSQL, MySQL and SQLite drivers into nexus constraint
// errors, so callers can branch with nexus.IsConstraintError without
// importing driver packages.
package sql
