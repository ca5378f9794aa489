package service_test

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/repository/contract"
	"github.com/maxviazov/railway-blog-service/internal/repository/sqlite"
)

var discard = zerolog.New(io.Discard)

type fakePostRepo struct {
	nextID    int64
	items     map[int64]model.Post
	createErr error
	lastPage  repository.Page // capture last page for window tests
	lastF     repository.PostFilter
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextID: 1, items: map[int64]model.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, p model.Post) (model.Post, error) {
	if f.createErr != nil {
		return model.Post{}, f.createErr
	}
	p.ID = f.nextID
	f.nextID++
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (model.Post, error) {
	p, ok := f.items[id]
	if !ok {
		return model.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePostRepo) Update(_ context.Context, p model.Post) (model.Post, error) {
	if _, ok := f.items[p.ID]; !ok {
		return model.Post{}, repository.ErrNotFound
	}
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakePostRepo) match(flt repository.PostFilter) []model.Post {
	var out []model.Post
	for _, p := range f.items {
		if flt.PublishedOnly && !p.IsPublished {
			continue
		}
		if flt.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *flt.CategoryID) {
			continue
		}
		if flt.Query != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Content), strings.ToLower(flt.Query)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakePostRepo) List(_ context.Context, flt repository.PostFilter, p repository.Page) (repository.PageResult[model.Post], error) {
	f.lastPage, f.lastF = p, flt
	all := f.match(flt)
	res := repository.PageResult[model.Post]{Items: []model.Post{}, Total: len(all)}
	for i := p.Offset; i < len(all) && i < p.Offset+p.Limit; i++ {
		res.Items = append(res.Items, all[i])
	}
	return res, nil
}

func (f *fakePostRepo) Count(_ context.Context, flt repository.PostFilter) (int, error) {
	return len(f.match(flt)), nil
}

func (f *fakePostRepo) Recent(_ context.Context, limit int) ([]model.Post, error) {
	all := f.match(repository.PostFilter{PublishedOnly: true})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

var _ repository.PostRepository = (*fakePostRepo)(nil)

// fakeCategoryRepo only answers lookups; services use it for existence checks.
type fakeCategoryRepo struct {
	repository.CategoryRepository
	items map[int64]model.Category
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (model.Category, error) {
	c, ok := f.items[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

// newStore opens a migrated SQLite store in a temp dir.
func newStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "svc.db"), discard)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, discard))
	store := sqlite.NewStore(db, sqlite.WithClock(contract.NewTickingClock().Now))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ptr[T any](v T) *T { return &v }

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
