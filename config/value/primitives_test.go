package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntValue(t *testing.T) {
	var i int

	ivar := NewInt(&i, 11)

	require.Equal(t, "11", ivar.String())
	require.NoError(t, ivar.Validate())
	require.False(t, ivar.IsEmpty())

	i = 42

	require.Equal(t, "42", ivar.String())

	require.NoError(t, ivar.Set("77"))
	require.Equal(t, int(77), i)

	require.Error(t, ivar.Set("seventy"))
	require.Equal(t, int(77), i)
}

func TestInt64Value(t *testing.T) {
	var i int64

	ivar := NewInt64(&i, 0)

	require.True(t, ivar.IsEmpty())

	require.NoError(t, ivar.Set("16"))
	require.Equal(t, int64(16), i)
	require.Equal(t, "16", ivar.String())
}

func TestBoolValue(t *testing.T) {
	var b bool

	bvar := NewBool(&b, true)

	require.Equal(t, "true", bvar.String())
	require.False(t, bvar.IsEmpty())

	require.NoError(t, bvar.Set("false"))
	require.False(t, b)
	require.True(t, bvar.IsEmpty())

	require.Error(t, bvar.Set("maybe"))
}

func TestStringValue(t *testing.T) {
	var s string

	svar := NewString(&s, "")

	require.True(t, svar.IsEmpty())

	svar.Set("index.html")
	require.Equal(t, "index.html", s)
	require.Equal(t, "index.html", svar.String())
}

func TestChoiceValue(t *testing.T) {
	var s string

	cvar := NewChoice(&s, "disk", []string{"disk", "s3"})

	require.NoError(t, cvar.Validate())

	cvar.Set(" S3 ")
	require.Equal(t, "s3", s)
	require.NoError(t, cvar.Validate())

	cvar.Set("ftp")
	require.Error(t, cvar.Validate())
}

func TestStringListValue(t *testing.T) {
	var l []string

	lvar := NewStringList(&l, []string{}, ",")

	require.True(t, lvar.IsEmpty())
	require.Equal(t, "(empty)", lvar.String())

	lvar.Set("http, counter,,config")
	require.Equal(t, []string{"http", "counter", "config"}, l)
	require.Equal(t, "http,counter,config", lvar.String())
}

func TestStringMapStringValue(t *testing.T) {
	var m map[string]string

	mvar := NewStringMapString(&m, map[string]string{".html": "text/html"})

	require.Equal(t, ".html:text/html", mvar.String())

	err := mvar.Set(".svg:image/svg+xml .txt:text/plain")
	require.NoError(t, err)
	require.Equal(t, map[string]string{".svg": "image/svg+xml", ".txt": "text/plain"}, m)
	require.Equal(t, ".svg:image/svg+xml .txt:text/plain", mvar.String())

	err = mvar.Set(".svg")
	require.Error(t, err)
}

func TestStringMapStringCopiesDefault(t *testing.T) {
	defaults := map[string]string{".css": "text/css"}

	var m map[string]string

	NewStringMapString(&m, defaults)

	m[".js"] = "application/javascript"

	require.Len(t, defaults, 1)
}
