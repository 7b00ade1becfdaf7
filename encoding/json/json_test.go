package json

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	document, err := Parse([]byte(`{"nbsheep": 7, "name": "dolly"}`))
	require.NoError(t, err)

	n, ok := Int(document, "nbsheep")
	require.True(t, ok)
	require.Equal(t, int64(7), n)

	_, ok = Int(document, "name")
	require.False(t, ok)

	_, ok = Int(document, "missing")
	require.False(t, ok)
}

func TestParseNotAnObject(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3]`))
	require.Error(t, err)
}

func TestIntFraction(t *testing.T) {
	document, err := Parse([]byte(`{"nbsheep": 7.5}`))
	require.NoError(t, err)

	_, ok := Int(document, "nbsheep")
	require.False(t, ok)

	n, ok := Int(map[string]interface{}{"nbsheep": float64(3)}, "nbsheep")
	require.True(t, ok)
	require.Equal(t, int64(3), n)

	_, ok = Int(nil, "nbsheep")
	require.False(t, ok)
}

func TestFormatError(t *testing.T) {
	_, err := Parse([]byte("{\n\"nbsheep\": , \"name\": \"dolly\"\n}"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "syntax error at line 2")
}
