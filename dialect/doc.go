// Package dialect abstracts the database layer behind small execution
// interfaces so the storage code above it stays backend-neutral.
//
// A Driver executes statements and opens transactions on one concrete
// database. The Postgres, MySQL and SQLite constants name the
// supported backends and double as database/sql driver names. Exec and
// Query pass statement arguments as []any and deliver results through
// an out value, which keeps the interfaces free of concrete row types.
//
// The dialect/sql sub-package implements Driver on top of database/sql
// and builds the collection paginators and finders on it:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
package dialect
