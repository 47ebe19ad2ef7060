package parameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString(" ab, max_depth = 3,,eval=patterns,expr=a=b")
	assert.Equal(t, Params{"ab": "", "max_depth": "3", "eval": "patterns", "expr": "a=b"}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("ab,depth=3,randomness=0.5,name=x,flag=false,empty=")

	b, err := GetParamOr(params, "ab", false)
	require.NoError(t, err)
	assert.True(t, b)
	b, err = GetParamOr(params, "flag", true)
	require.NoError(t, err)
	assert.False(t, b)
	b, err = GetParamOr(params, "missing", true)
	require.NoError(t, err)
	assert.True(t, b)

	i, err := GetParamOr(params, "depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	i, err = GetParamOr(params, "empty", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	f32, err := GetParamOr(params, "randomness", float32(0))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), f32)
	f64, err := GetParamOr(params, "randomness", 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, f64)

	s, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = GetParamOr(params, "name", 1)
	assert.ErrorContains(t, err, `name="x"`)
	_, err = GetParamOr(params, "name", false)
	assert.Error(t, err)

	// Get doesn't consume parameters.
	assert.Len(t, params, 6)
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("depth=3,bad=x")
	i, err := PopParamOr(params, "depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	assert.NotContains(t, params, "depth")

	// Failing to parse leaves the parameter.
	_, err = PopParamOr(params, "bad", 2)
	assert.Error(t, err)
	assert.Contains(t, params, "bad")
	assert.ErrorContains(t, CheckAllUsed(params), `"bad"`)

	delete(params, "bad")
	assert.NoError(t, CheckAllUsed(params))
}

func TestPopOneOf(t *testing.T) {
	params := NewFromConfigString("ab,max_depth=3")
	key, err := PopOneOf(params, "minimax", "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", key)
	assert.Equal(t, Params{"max_depth": "3"}, params)

	_, err = PopOneOf(params, "minimax", "ab")
	assert.ErrorContains(t, err, "none of")

	_, err = PopOneOf(NewFromConfigString("ab,minimax"), "minimax", "ab")
	assert.ErrorContains(t, err, "only one of")
}
