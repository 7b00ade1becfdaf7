package vars

import (
	"testing"

	"github.com/datarhei/sheepcounter/config/value"

	"github.com/stretchr/testify/require"
)

func TestVars(t *testing.T) {
	v1 := Variables{}

	s := ""

	v1.Register(value.NewString(&s, "dolly"), "string", "", "a string", false, false)

	require.Equal(t, "dolly", s)
	require.Empty(t, v1.Overrides())
}

func TestMerge(t *testing.T) {
	t.Setenv("SHEEP_TEST_COUNT", "42")
	t.Setenv("SHEEP_TEST_BROKEN", "many")

	v := Variables{}

	var count, broken int64
	var name string

	v.Register(value.NewInt64(&count, 7), "count", "SHEEP_TEST_COUNT", "count", false, false)
	v.Register(value.NewInt64(&broken, 1), "broken", "SHEEP_TEST_BROKEN", "broken", false, false)
	v.Register(value.NewString(&name, "dolly"), "name", "SHEEP_TEST_NAME_UNSET", "name", false, false)

	v.Merge()

	require.Equal(t, int64(42), count)
	require.Equal(t, int64(1), broken)
	require.Equal(t, "dolly", name)

	require.ElementsMatch(t, []string{"count", "broken"}, v.Overrides())
	require.True(t, v.HasErrors())
}

func TestValidate(t *testing.T) {
	v := Variables{}

	var name, secret string

	v.Register(value.NewString(&name, ""), "name", "", "name", true, false)
	v.Register(value.NewString(&secret, "baa"), "secret", "", "secret", false, true)

	v.Validate()

	require.True(t, v.HasErrors())

	levels := map[string][]string{}
	values := map[string]string{}

	v.Messages(func(level string, variable Variable, message string) {
		levels[variable.Name] = append(levels[variable.Name], level)
		values[variable.Name] = variable.Value
	})

	require.Equal(t, []string{"info", "error"}, levels["name"])
	require.Equal(t, []string{"info"}, levels["secret"])
	require.Equal(t, "***", values["secret"])

	v.ResetLogs()
	require.False(t, v.HasErrors())
}
