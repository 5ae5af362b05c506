package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 42, NormalizeLimit(42))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}

func TestParse(t *testing.T) {
	params, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Params{Limit: DefaultLimit}, params)

	params, err = Parse("20", "40")
	require.NoError(t, err)
	assert.Equal(t, Params{Limit: 20, Offset: 40}, params)

	params, err = Parse("9999", "0")
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, params.Limit)

	_, err = Parse("abc", "")
	assert.Error(t, err)
	_, err = Parse("10", "-1")
	assert.Error(t, err)
}
