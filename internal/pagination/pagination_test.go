package pagination_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/pagination"
)

// render flattens a listing into ints with 0 standing for a gap.
func render(p *pagination.Paginator) []int {
	var out []int
	for it := range p.IterPages() {
		if it.Gap {
			out = append(out, 0)
			continue
		}
		out = append(out, it.Number)
	}
	return out
}

func seq(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestNew_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		p, err := pagination.New(1, 3, size)
		assert.ErrorIs(t, err, pagination.ErrInvalidPageSize)
		assert.Nil(t, p)
	}
}

func TestIterPages_SmallListingsHaveNoGaps(t *testing.T) {
	for total := 0; total <= 9; total++ {
		for page := 1; page <= total+1; page++ {
			p, err := pagination.New(page, total, 10)
			require.NoError(t, err)
			got := render(p)
			if total == 0 {
				assert.Empty(t, got)
				continue
			}
			assert.Equal(t, seq(1, total), got, "total=%d page=%d", total, page)
		}
	}
}

func TestIterPages_Windows(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		total int
		want  []int
	}{
		{"middle", 10, 20, []int{1, 2, 0, 8, 9, 10, 11, 12, 0, 19, 20}},
		{"first page", 1, 20, []int{1, 2, 3, 0, 19, 20}},
		{"near start joins left edge", 4, 20, []int{1, 2, 3, 4, 5, 6, 0, 19, 20}},
		{"last page", 20, 20, []int{1, 2, 0, 18, 19, 20}},
		{"near end joins right edge", 17, 20, []int{1, 2, 0, 15, 16, 17, 18, 19, 20}},
		{"ten pages", 5, 10, []int{1, 2, 3, 4, 5, 6, 7, 0, 9, 10}},
		{"page beyond total", 30, 20, []int{1, 2, 0, 19, 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := pagination.New(tc.page, tc.total, 5)
			require.NoError(t, err)
			assert.Equal(t, tc.want, render(p))
		})
	}
}

func TestIterPages_NeverExceedsTotalOrRepeatsGaps(t *testing.T) {
	for total := 10; total <= 40; total++ {
		for page := 1; page <= total+5; page++ {
			p, err := pagination.New(page, total, 5)
			require.NoError(t, err)
			items := p.Pages()
			require.NotEmpty(t, items)
			assert.False(t, items[0].Gap, "leading gap total=%d page=%d", total, page)
			for i, it := range items {
				if it.Gap {
					require.Less(t, i+1, len(items))
					assert.False(t, items[i+1].Gap, "double gap total=%d page=%d", total, page)
					continue
				}
				assert.LessOrEqual(t, it.Number, total)
				assert.GreaterOrEqual(t, it.Number, 1)
			}
		}
	}
}

func TestIterPages_Restartable(t *testing.T) {
	p, err := pagination.New(10, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, render(p), render(p))
	assert.Equal(t, p.Pages(), p.Pages())
}

func TestIterPages_EarlyBreak(t *testing.T) {
	p, err := pagination.New(10, 20, 5)
	require.NoError(t, err)
	var got []pagination.PageItem
	for it := range p.IterPages() {
		got = append(got, it)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []pagination.PageItem{{Number: 1}, {Number: 2}, {Gap: true}}, got)
}

func TestNavigationFlags(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		p, err := pagination.New(1, 0, 10)
		require.NoError(t, err)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
		assert.Nil(t, p.Prev)
		assert.Nil(t, p.Next)
		assert.Empty(t, p.Pages())
	})
	t.Run("single page", func(t *testing.T) {
		p, err := pagination.New(1, 1, 10)
		require.NoError(t, err)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
		assert.Equal(t, []int{1}, render(p))
	})
	t.Run("middle", func(t *testing.T) {
		p, err := pagination.New(3, 5, 10)
		require.NoError(t, err)
		require.NotNil(t, p.Prev)
		require.NotNil(t, p.Next)
		assert.Equal(t, 2, *p.Prev)
		assert.Equal(t, 4, *p.Next)
	})
	t.Run("beyond last", func(t *testing.T) {
		p, err := pagination.New(9, 3, 10)
		require.NoError(t, err)
		assert.True(t, p.HasPrev)
		assert.False(t, p.HasNext)
	})
	t.Run("negative total", func(t *testing.T) {
		p, err := pagination.New(1, -4, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, p.TotalPages)
	})
}

func TestTotalPagesAndOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.TotalPages(0, 10))
	assert.Equal(t, 1, pagination.TotalPages(1, 10))
	assert.Equal(t, 1, pagination.TotalPages(10, 10))
	assert.Equal(t, 2, pagination.TotalPages(11, 10))
	assert.Equal(t, 0, pagination.TotalPages(5, 0))

	assert.Equal(t, 0, pagination.Offset(1, 10))
	assert.Equal(t, 20, pagination.Offset(3, 10))
	assert.Equal(t, 0, pagination.Offset(0, 10))
	assert.Equal(t, pagination.MaxOffset, pagination.Offset(1000000000000000000, 10))
	assert.Equal(t, pagination.MaxOffset, pagination.Offset(math.MaxInt, 1))
}
