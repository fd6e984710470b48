// Package dataloader provides batching helpers for resolvers that load
// collection values on demand.
//
// GraphQL servers built on derived object types resolve relations one
// parent at a time. Batching libraries such as
// github.com/graph-gophers/dataloader/v7 and
// github.com/vikstrous/dataloadgen collapse the lookups of a request
// into one query per collection, and expect batch functions that return
// results in the order of the requested keys. The helpers here adapt
// batches of nexus.Value records to that contract.
//
// # Loading values by key
//
// BatchValues builds a batch function that resolves a key set against a
// single table with one IN query:
//
//	loader := dataloadgen.NewLoader(dataloader.BatchValues(drv, "users", "id"))
//	user, err := loader.Load(ctx, "1")
//
// # Grouping tail relations
//
// One-to-many lookups group rows by the referencing column instead of
// pairing each key with a single row. The paginator's page size bounds
// the fan-out of one batch:
//
//	page, err := posts.Paginate(ctx, nexus.PageInput{
//	    Condition: querylanguage.FieldIn("author_id", ids...),
//	})
//	if err != nil {
//	    return nil, []error{err}
//	}
//	grouped := dataloader.GroupValues(authorIDs, page.Values, "author_id")
package dataloader

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/dialect"
	"github.com/syssam/nexus/dialect/sql"
	"github.com/syssam/nexus/querylanguage"
)

// ErrNotFound is returned when a batch result carries no value for a
// requested key.
var ErrNotFound = errors.New("dataloader: value not found")

// KeyFunc extracts a key from a loaded value.
type KeyFunc[K comparable, V any] func(V) K

// BatchFunc loads a batch of values by their keys. The returned slices
// have the same length and order as keys; a batch-wide failure is
// reported as a single-element error slice.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, []error)

// OrderByKeys reorders values to match the order of requested keys.
// Missing values are represented as zero values with ErrNotFound in the
// corresponding error slot. Both returned slices have the same length
// as keys, which is the contract batching libraries rely on.
func OrderByKeys[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) ([]V, []error) {
	lookup := make(map[K]V, len(values))
	for _, v := range values {
		lookup[keyFn(v)] = v
	}
	result := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		if v, ok := lookup[key]; ok {
			result[i] = v
		} else {
			errs[i] = ErrNotFound
		}
	}
	return result, errs
}

// OrderByKeysNoError reorders values to match the order of requested
// keys, leaving zero values for misses. Use it where an absent row is a
// valid outcome, as with a relation whose reference column is NULL.
func OrderByKeysNoError[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) []V {
	result, _ := OrderByKeys(keys, values, keyFn)
	return result
}

// GroupByKey groups values by a key function. Rows of a one-to-many
// lookup share the referencing column, so a single batch query fans out
// to one group per parent key.
func GroupByKey[K comparable, V any](values []V, keyFn KeyFunc[K, V]) map[K][]V {
	result := make(map[K][]V)
	for _, v := range values {
		key := keyFn(v)
		result[key] = append(result[key], v)
	}
	return result
}

// OrderGroupsByKeys reorders grouped values to match the order of
// requested keys. A key with no group yields a nil slice, not an error;
// a parent without tail rows is a valid outcome.
func OrderGroupsByKeys[K comparable, V any](keys []K, groups map[K][]V) [][]V {
	result := make([][]V, len(keys))
	for i, key := range keys {
		result[i] = groups[key]
	}
	return result
}

// Keys extracts the normalized key column of each value, preserving
// order and duplicates. Useful for chaining loads, as when resolving
// the authors of an already loaded page of posts.
func Keys(values []nexus.Value, column string) []string {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = recordKey(v.Get(column))
	}
	return keys
}

// OrderValues reorders value records to match the order of requested
// keys, pairing each key with the row whose column equals it. A miss
// yields a not-found error carrying the label and the searched key, so
// callers can test it with nexus.IsNotFound.
func OrderValues(label string, keys []string, values []nexus.Value, column string) ([]nexus.Value, []error) {
	lookup := make(map[string]nexus.Value, len(values))
	for _, v := range values {
		lookup[recordKey(v.Get(column))] = v
	}
	result := make([]nexus.Value, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		if v, ok := lookup[key]; ok {
			result[i] = v
		} else {
			errs[i] = nexus.NewNotFoundErrorWithID(label, key)
		}
	}
	return result, errs
}

// GroupValues groups value records by the given column and orders the
// groups to match the requested keys. Keys without rows yield nil
// groups.
func GroupValues(keys []string, values []nexus.Value, column string) [][]nexus.Value {
	groups := make(map[string][]nexus.Value)
	for _, v := range values {
		key := recordKey(v.Get(column))
		groups[key] = append(groups[key], v)
	}
	return OrderGroupsByKeys(keys, groups)
}

// BatchValues returns a batch function that resolves keys against a
// single table with one IN query per batch. Results are reordered to
// match the requested keys; keys without a row fail with a not-found
// error labeled by the table.
func BatchValues(drv dialect.Driver, table, column string) BatchFunc[string, nexus.Value] {
	p := sql.NewPaginator(drv, table)
	return func(ctx context.Context, keys []string) ([]nexus.Value, []error) {
		if len(keys) == 0 {
			return nil, nil
		}
		vs := make([]any, len(keys))
		for i, key := range keys {
			vs[i] = key
		}
		page, err := p.Paginate(ctx, nexus.PageInput{
			Condition: querylanguage.FieldIn(column, vs...),
			Limit:     len(keys),
		})
		if err != nil {
			return nil, []error{err}
		}
		return OrderValues(table, keys, page.Values, column)
	}
}

// recordKey normalizes a raw record key to its text form. Drivers
// return key columns as int64, []byte, or string depending on the
// database and column type.
func recordKey(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// ctxKey is the context key for storing loaders.
type ctxKey struct{}

// WithLoaders injects request-scoped loaders into the context. Handlers
// construct one loader set per request so batching and caching never
// leak across requests:
//
//	func Middleware(drv dialect.Driver) func(http.Handler) http.Handler {
//	    return func(next http.Handler) http.Handler {
//	        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	            loaders := &Loaders{
//	                Users: dataloadgen.NewLoader(dataloader.BatchValues(drv, "users", "id")),
//	            }
//	            ctx := dataloader.WithLoaders(r.Context(), loaders)
//	            next.ServeHTTP(w, r.WithContext(ctx))
//	        })
//	    }
//	}
func WithLoaders[T any](ctx context.Context, loaders T) context.Context {
	return context.WithValue(ctx, ctxKey{}, loaders)
}

// For extracts the loaders injected by WithLoaders, returning the zero
// value when the context carries none.
//
//	loaders := dataloader.For[*Loaders](ctx)
//	user, err := loaders.Users.Load(ctx, userID)
func For[T any](ctx context.Context) T {
	v, _ := ctx.Value(ctxKey{}).(T)
	return v
}

// BatchResult pairs a loaded value with its per-key error.
type BatchResult[V any] struct {
	Value V
	Error error
}

// NewBatchResult creates a new BatchResult.
func NewBatchResult[V any](value V, err error) BatchResult[V] {
	return BatchResult[V]{Value: value, Error: err}
}

// Results zips separate value and error slices into BatchResult form,
// as expected by libraries that report batch outcomes in one slice.
func Results[V any](values []V, errs []error) []BatchResult[V] {
	results := make([]BatchResult[V], len(values))
	for i := range values {
		var err error
		if i < len(errs) {
			err = errs[i]
		}
		results[i] = BatchResult[V]{Value: values[i], Error: err}
	}
	return results
}
