package log

import (
	"testing"

	"github.com/datarhei/sheepcounter/log"

	"github.com/stretchr/testify/require"
)

func TestWrapper(t *testing.T) {
	buffer := log.NewBufferWriter(log.Ldebug, 10)

	w := NewWrapper(log.New("HTTP").WithOutput(buffer))

	p := []byte(`{"time":"2023-09-01T10:00:00Z","level":"WARN","message":"first\nsecond"}`)

	n, err := w.Write(p)
	require.NoError(t, err)
	require.Equal(t, len(p), n)

	_, err = w.Write([]byte("plain text\n"))
	require.NoError(t, err)

	events := buffer.Events()
	require.Equal(t, 3, len(events))

	require.Equal(t, "first", events[0].Message)
	require.Equal(t, log.Lwarn, events[0].Level)
	require.Equal(t, "second", events[1].Message)
	require.Equal(t, "plain text", events[2].Message)
	require.Equal(t, log.Linfo, events[2].Level)
}
