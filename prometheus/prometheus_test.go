package prometheus

import (
	"testing"

	"github.com/datarhei/sheepcounter/counter"

	"github.com/stretchr/testify/require"
)

func TestSheepCollector(t *testing.T) {
	c := counter.New()
	c.Set(41)
	c.Increment()

	m := New()

	err := m.Register(NewSheepCollector("dolly", c))
	require.NoError(t, err)

	data, contentType, err := m.Exposition()
	require.NoError(t, err)
	require.Contains(t, contentType, "text/plain")
	require.Contains(t, string(data), "# TYPE sheep_count gauge")
	require.Contains(t, string(data), `sheep_count{instance="dolly"} 42`)

	c.Reset()

	data, _, err = m.Exposition()
	require.NoError(t, err)
	require.Contains(t, string(data), `sheep_count{instance="dolly"} 0`)
}

func TestRegisterTwice(t *testing.T) {
	c := counter.New()

	m := New()

	require.NoError(t, m.Register(NewSheepCollector("dolly", c)))
	require.Error(t, m.Register(NewSheepCollector("dolly", c)))

	m.UnregisterAll()

	require.NoError(t, m.Register(NewSheepCollector("dolly", c)))
}

func TestRuntime(t *testing.T) {
	m, err := NewWithRuntime()
	require.NoError(t, err)

	data, _, err := m.Exposition()
	require.NoError(t, err)
	require.Contains(t, string(data), "go_goroutines")
}
