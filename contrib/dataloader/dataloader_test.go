package dataloader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/nexus"
	"github.com/syssam/nexus/contrib/dataloader"
	"github.com/syssam/nexus/dialect"
	"github.com/syssam/nexus/dialect/sql"
	"github.com/syssam/nexus/querylanguage"
)

func TestOrderByKeys(t *testing.T) {
	t.Parallel()
	keyFn := func(a author) int { return a.ID }

	t.Run("all keys found", func(t *testing.T) {
		keys := []int{1, 2, 3}
		values := []author{
			{ID: 3, Name: "carol"},
			{ID: 1, Name: "alice"},
			{ID: 2, Name: "bob"},
		}
		result, errs := dataloader.OrderByKeys(keys, values, keyFn)
		require.Len(t, result, 3)
		require.Len(t, errs, 3)
		assert.Equal(t, "alice", result[0].Name)
		assert.Equal(t, "bob", result[1].Name)
		assert.Equal(t, "carol", result[2].Name)
		for _, err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("missing keys carry errors", func(t *testing.T) {
		keys := []int{1, 2, 3}
		values := []author{{ID: 1, Name: "alice"}, {ID: 3, Name: "carol"}}
		result, errs := dataloader.OrderByKeys(keys, values, keyFn)
		require.Len(t, result, 3)
		require.Len(t, errs, 3)
		assert.NoError(t, errs[0])
		assert.ErrorIs(t, errs[1], dataloader.ErrNotFound)
		assert.NoError(t, errs[2])
		assert.Zero(t, result[1])
	})

	t.Run("duplicate keys share the row", func(t *testing.T) {
		keys := []int{2, 2}
		values := []author{{ID: 2, Name: "bob"}}
		result, errs := dataloader.OrderByKeys(keys, values, keyFn)
		require.Len(t, result, 2)
		assert.Equal(t, "bob", result[0].Name)
		assert.Equal(t, "bob", result[1].Name)
		assert.NoError(t, errs[0])
		assert.NoError(t, errs[1])
	})
}

func TestOrderByKeysNoError(t *testing.T) {
	t.Parallel()
	keys := []int{1, 2}
	values := []author{{ID: 2, Name: "bob"}}
	result := dataloader.OrderByKeysNoError(keys, values, func(a author) int { return a.ID })
	require.Len(t, result, 2)
	assert.Zero(t, result[0])
	assert.Equal(t, "bob", result[1].Name)
}

func TestGroupByKey(t *testing.T) {
	t.Parallel()
	posts := []post{
		{ID: 10, AuthorID: 1, Title: "hello"},
		{ID: 11, AuthorID: 2, Title: "world"},
		{ID: 12, AuthorID: 1, Title: "bye"},
	}
	grouped := dataloader.GroupByKey(posts, func(p post) int { return p.AuthorID })
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[1], 2)
	assert.Len(t, grouped[2], 1)
	assert.Equal(t, "world", grouped[2][0].Title)
}

func TestOrderGroupsByKeys(t *testing.T) {
	t.Parallel()
	grouped := map[int][]post{
		1: {{ID: 10, AuthorID: 1, Title: "hello"}, {ID: 12, AuthorID: 1, Title: "bye"}},
		2: {{ID: 11, AuthorID: 2, Title: "world"}},
	}
	ordered := dataloader.OrderGroupsByKeys([]int{2, 3, 1}, grouped)
	require.Len(t, ordered, 3)
	assert.Len(t, ordered[0], 1)
	assert.Nil(t, ordered[1])
	assert.Len(t, ordered[2], 2)
}

func TestKeys(t *testing.T) {
	t.Parallel()
	values := []nexus.Value{
		nexus.NewValue(map[string]any{"id": int64(7)}),
		nexus.NewValue(map[string]any{"id": []byte("beef")}),
		nexus.NewValue(map[string]any{"id": "7"}),
	}
	assert.Equal(t, []string{"7", "beef", "7"}, dataloader.Keys(values, "id"))
}

func TestOrderValues(t *testing.T) {
	t.Parallel()
	values := []nexus.Value{
		nexus.NewValue(map[string]any{"id": int64(3), "name": "carol"}),
		nexus.NewValue(map[string]any{"id": int64(1), "name": "alice"}),
	}
	result, errs := dataloader.OrderValues("users", []string{"1", "2", "3"}, values, "id")
	require.Len(t, result, 3)
	require.Len(t, errs, 3)
	assert.Equal(t, "alice", result[0].Get("name"))
	assert.Equal(t, "carol", result[2].Get("name"))
	require.Error(t, errs[1])
	assert.True(t, nexus.IsNotFound(errs[1]))
	var nfe *nexus.NotFoundError
	require.ErrorAs(t, errs[1], &nfe)
	assert.Equal(t, "users", nfe.Label())
	assert.Equal(t, "2", nfe.ID())
}

func TestGroupValues(t *testing.T) {
	t.Parallel()
	values := []nexus.Value{
		nexus.NewValue(map[string]any{"id": int64(10), "author_id": int64(1)}),
		nexus.NewValue(map[string]any{"id": int64(11), "author_id": int64(2)}),
		nexus.NewValue(map[string]any{"id": int64(12), "author_id": int64(1)}),
	}
	grouped := dataloader.GroupValues([]string{"1", "3", "2"}, values, "author_id")
	require.Len(t, grouped, 3)
	assert.Len(t, grouped[0], 2)
	assert.Nil(t, grouped[1])
	assert.Len(t, grouped[2], 1)
}

func TestBatchValues(t *testing.T) {
	t.Parallel()
	drv, err := sql.Open(dialect.SQLite, "file:dataloader?mode=memory")
	require.NoError(t, err)
	t.Cleanup(func() { drv.Close() })
	drv.DB().SetMaxOpenConns(1)
	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE users (id integer PRIMARY KEY, name text NOT NULL)`,
		`INSERT INTO users (id, name) VALUES (1, 'alice'), (2, 'bob'), (3, 'carol')`,
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}
	batch := dataloader.BatchValues(drv, "users", "id")

	t.Run("orders results by key", func(t *testing.T) {
		values, errs := batch(ctx, []string{"2", "1"})
		require.Len(t, values, 2)
		require.Len(t, errs, 2)
		assert.Equal(t, "bob", values[0].Get("name"))
		assert.Equal(t, "alice", values[1].Get("name"))
		for _, err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("reports misses per key", func(t *testing.T) {
		values, errs := batch(ctx, []string{"3", "9"})
		require.Len(t, values, 2)
		require.Len(t, errs, 2)
		assert.Equal(t, "carol", values[0].Get("name"))
		assert.NoError(t, errs[0])
		assert.True(t, nexus.IsNotFound(errs[1]))
		var nfe *nexus.NotFoundError
		require.ErrorAs(t, errs[1], &nfe)
		assert.Equal(t, "users", nfe.Label())
	})

	t.Run("empty batch issues no query", func(t *testing.T) {
		values, errs := batch(ctx, nil)
		assert.Nil(t, values)
		assert.Nil(t, errs)
	})

	t.Run("batch failure is reported once", func(t *testing.T) {
		broken := dataloader.BatchValues(drv, "users", "no such column")
		values, errs := broken(ctx, []string{"1", "2"})
		assert.Nil(t, values)
		require.Len(t, errs, 1)
		var qe *nexus.QueryError
		require.ErrorAs(t, errs[0], &qe)
		assert.Equal(t, "compile", qe.Op)
	})
}

func TestGroupValuesFromQuery(t *testing.T) {
	t.Parallel()
	drv, err := sql.Open(dialect.SQLite, "file:dataloader_tails?mode=memory")
	require.NoError(t, err)
	t.Cleanup(func() { drv.Close() })
	drv.DB().SetMaxOpenConns(1)
	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE posts (id integer PRIMARY KEY, title text NOT NULL, user_id integer NOT NULL)`,
		`INSERT INTO posts (id, title, user_id) VALUES
			(10, 'hello', 1), (11, 'world', 1), (12, 'bye', 2)`,
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	userIDs := []string{"1", "3", "2"}
	vs := make([]any, len(userIDs))
	for i, id := range userIDs {
		vs[i] = id
	}
	p := sql.NewPaginator(drv, "posts", sql.WithOrderBy("id"))
	page, err := p.Paginate(ctx, nexus.PageInput{Condition: querylanguage.FieldIn("user_id", vs...)})
	require.NoError(t, err)
	require.Len(t, page.Values, 3)

	grouped := dataloader.GroupValues(userIDs, page.Values, "user_id")
	require.Len(t, grouped, 3)
	require.Len(t, grouped[0], 2)
	assert.Equal(t, "hello", grouped[0][0].Get("title"))
	assert.Equal(t, "world", grouped[0][1].Get("title"))
	assert.Nil(t, grouped[1])
	require.Len(t, grouped[2], 1)
	assert.Equal(t, "bye", grouped[2][0].Get("title"))
}

func TestWithLoaders(t *testing.T) {
	t.Parallel()
	type loaders struct {
		users dataloader.BatchFunc[string, nexus.Value]
	}
	ctx := dataloader.WithLoaders(context.Background(), &loaders{
		users: func(ctx context.Context, keys []string) ([]nexus.Value, []error) {
			return make([]nexus.Value, len(keys)), make([]error, len(keys))
		},
	})
	got := dataloader.For[*loaders](ctx)
	require.NotNil(t, got)
	values, errs := got.users(ctx, []string{"1", "2"})
	assert.Len(t, values, 2)
	assert.Len(t, errs, 2)

	assert.Nil(t, dataloader.For[*loaders](context.Background()))
}

func TestResults(t *testing.T) {
	t.Parallel()
	values := []string{"a", "b", "c"}
	errs := []error{nil, dataloader.ErrNotFound}
	results := dataloader.Results(values, errs)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Value)
	assert.NoError(t, results[0].Error)
	assert.ErrorIs(t, results[1].Error, dataloader.ErrNotFound)
	assert.NoError(t, results[2].Error)

	r := dataloader.NewBatchResult("d", dataloader.ErrNotFound)
	assert.Equal(t, "d", r.Value)
	assert.ErrorIs(t, r.Error, dataloader.ErrNotFound)
}

type author struct {
	ID   int
	Name string
}

type post struct {
	ID       int
	AuthorID int
	Title    string
}
