package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	n := Params{}.Normalize()
	assert.Equal(t, DefaultPage, n.Page)
	assert.Equal(t, DefaultLimit, n.Limit)
}

func TestNormalizeCapsLimit(t *testing.T) {
	n := Params{Page: 2, Limit: 5000}.Normalize()
	assert.Equal(t, MaxLimit, n.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 30, Params{Page: 4, Limit: 10}.Offset())
}

func TestPageOf(t *testing.T) {
	page := Params{Page: 2, Limit: 10}.PageOf(25)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	exact := Params{Page: 1, Limit: 10}.PageOf(20)
	assert.Equal(t, 2, exact.TotalPages)
}
