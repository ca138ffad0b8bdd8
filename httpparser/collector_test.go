package httpparser

import (
	"testing"

	"github.com/drift-web/drift/http/method"
	"github.com/drift-web/drift/http/proto"
	"github.com/stretchr/testify/require"
)

func TestCollectorMayHaveBody(t *testing.T) {
	t.Run("bodyless methods", func(t *testing.T) {
		for _, m := range []method.Method{
			method.GET, method.HEAD, method.OPTIONS, method.TRACE, method.CONNECT,
		} {
			c := NewCollector()
			c.Method = m
			require.False(t, c.MayHaveBody(), m.String())
		}
	})

	t.Run("body-carrying methods", func(t *testing.T) {
		for _, m := range []method.Method{
			method.POST, method.PUT, method.DELETE, method.PATCH,
		} {
			c := NewCollector()
			c.Method = m
			require.True(t, c.MayHaveBody(), m.String())
		}
	})

	t.Run("bodyless response codes", func(t *testing.T) {
		for _, code := range []int{100, 101, 204, 304} {
			c := NewCollector()
			c.Code = code
			require.False(t, c.MayHaveBody(), "code %d", code)
		}
	})

	t.Run("body-carrying response codes", func(t *testing.T) {
		for _, code := range []int{200, 201, 301, 404, 500} {
			c := NewCollector()
			c.Code = code
			require.True(t, c.MayHaveBody(), "code %d", code)
		}
	})

	t.Run("nothing known yet", func(t *testing.T) {
		require.True(t, NewCollector().MayHaveBody())
	})
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.OnRequestLine(method.POST, "/x", proto.HTTP11))
	c.OnHeader("Host", "a")
	c.Reset()

	require.Equal(t, method.Unknown, c.Method)
	require.Equal(t, "", c.Target)
	require.Equal(t, proto.Unknown, c.Proto)
	require.Equal(t, 0, c.Headers.Len())
	require.Equal(t, 0, c.Trailers.Len())
}
