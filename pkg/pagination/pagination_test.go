package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Limit: 20, Offset: 0}, Params{}.Normalize(0))
	assert.Equal(t, Params{Limit: 50, Offset: 0}, Params{Offset: -3}.Normalize(50))
	assert.Equal(t, Params{Limit: MaxLimit, Offset: 10}, Params{Limit: 500, Offset: 10}.Normalize(20))
	assert.Equal(t, 20, NormalizeLimit(0))
}

func TestBuild(t *testing.T) {
	p := Build(45, Params{Limit: 20, Offset: 20})
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := Build(45, Params{Limit: 20, Offset: 40})
	assert.Equal(t, 3, last.Page)
	assert.False(t, last.HasNext)

	empty := Build(0, Params{Limit: 20})
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, 1, empty.Page)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
