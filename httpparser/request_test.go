package httpparser

import (
	"io"
	"testing"

	"github.com/drift-web/drift/config"
	"github.com/drift-web/drift/http/method"
	"github.com/drift-web/drift/http/proto"
	"github.com/drift-web/drift/http/status"
	"github.com/stretchr/testify/require"
)

func newBoundRequestParser(cfg *config.Config) (*RequestParser, *Collector) {
	c := NewCollector()
	p := NewRequestParser(cfg, c)
	c.Bind(p.Parser)

	return p, c
}

func TestParseRequestLine(t *testing.T) {
	t.Run("simple get", func(t *testing.T) {
		p, c := newBoundRequestParser(config.Default())
		w := NewWindow([]byte("GET /path?q=1 HTTP/1.1\r\n"))

		done, err := p.ParseRequestLine(w)
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, method.GET, c.Method)
		require.Equal(t, "/path?q=1", c.Target)
		require.Equal(t, proto.HTTP11, c.Proto)
	})

	t.Run("byte by byte", func(t *testing.T) {
		input := []byte("DELETE /things/42 HTTP/1.0\r\n")
		for n := 1; n <= len(input); n++ {
			p, c := newBoundRequestParser(config.Default())
			for begin := 0; begin < len(input); begin += n {
				end := begin + n
				if end > len(input) {
					end = len(input)
				}

				_, err := p.ParseRequestLine(NewWindow(input[begin:end]))
				require.NoError(t, err, "window size %d", n)
			}

			require.Equal(t, method.DELETE, c.Method, "window size %d", n)
			require.Equal(t, "/things/42", c.Target, "window size %d", n)
			require.Equal(t, proto.HTTP10, c.Proto, "window size %d", n)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		p, _ := newBoundRequestParser(config.Default())
		_, err := p.ParseRequestLine(NewWindow([]byte("FROBNICATE / HTTP/1.1\r\n")))
		require.Equal(t, status.ErrUnknownMethod, err)
	})

	t.Run("empty target", func(t *testing.T) {
		p, _ := newBoundRequestParser(config.Default())
		_, err := p.ParseRequestLine(NewWindow([]byte("GET  HTTP/1.1\r\n")))
		require.Equal(t, status.ErrEmptyRequestTarget, err)
	})

	t.Run("unsupported protocol", func(t *testing.T) {
		p, _ := newBoundRequestParser(config.Default())
		_, err := p.ParseRequestLine(NewWindow([]byte("GET / SPDY/3\r\n")))
		require.Equal(t, status.ErrUnsupportedProtocol, err)
	})

	t.Run("request line size limit", func(t *testing.T) {
		cfg := config.Default()
		cfg.RequestLine.SizeLimit = 10
		p, _ := newBoundRequestParser(cfg)
		_, err := p.ParseRequestLine(NewWindow([]byte("GET /rather/long/path HTTP/1.1\r\n")))
		require.Equal(t, status.ErrSizeLimitExceeded, err)
	})

	t.Run("parse after completion", func(t *testing.T) {
		p, _ := newBoundRequestParser(config.Default())
		done, err := p.ParseRequestLine(NewWindow([]byte("GET / HTTP/1.1\r\n")))
		require.NoError(t, err)
		require.True(t, done)

		_, err = p.ParseRequestLine(NewWindow([]byte("GET / HTTP/1.1\r\n")))
		require.Equal(t, status.ErrParserIsDone, err)
	})
}

func TestParseRequest(t *testing.T) {
	t.Run("post with content length", func(t *testing.T) {
		input := []byte(
			"POST /submit HTTP/1.1\r\n" +
				"Host: example.com\r\n" +
				"Content-Length: 11\r\n" +
				"\r\n" +
				"hello world",
		)

		p, c := newBoundRequestParser(config.Default())
		w := NewWindow(input)

		done, err := p.ParseRequestLine(w)
		require.NoError(t, err)
		require.True(t, done)

		done, err = p.ParseHeaders(w)
		require.NoError(t, err)
		require.True(t, done)
		require.True(t, p.HeadersComplete())

		body, complete, err := collectContent(p.Parser, w)
		require.NoError(t, err)
		require.True(t, complete)
		require.Equal(t, "hello world", string(body))
		require.Equal(t, "example.com", c.Headers.Value("Host"))
	})

	t.Run("get without framing has no body", func(t *testing.T) {
		input := []byte("GET / HTTP/1.1\r\nHost: a\r\n\r\n")
		p, _ := newBoundRequestParser(config.Default())
		w := NewWindow(input)

		done, err := p.ParseRequestLine(w)
		require.NoError(t, err)
		require.True(t, done)

		done, err = p.ParseHeaders(w)
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, FramingNone, p.ContentType())

		_, err = p.ParseContent(w)
		require.Equal(t, io.EOF, err)
	})

	t.Run("chunked post with trailers", func(t *testing.T) {
		input := []byte(
			"POST /upload HTTP/1.1\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"5\r\nhello\r\n0\r\nX-Checksum: abc\r\n\r\n",
		)

		p, c := newBoundRequestParser(config.Default())
		w := NewWindow(input)

		done, err := p.ParseRequestLine(w)
		require.NoError(t, err)
		require.True(t, done)

		done, err = p.ParseHeaders(w)
		require.NoError(t, err)
		require.True(t, done)

		body, complete, err := collectContent(p.Parser, w)
		require.NoError(t, err)
		require.True(t, complete)
		require.Equal(t, "hello", string(body))
		require.Equal(t, "abc", c.Trailers.Value("X-Checksum"))
		require.False(t, c.Headers.Has("X-Checksum"))
	})

	t.Run("two requests on one connection", func(t *testing.T) {
		parseOne := func(w *Window, p *RequestParser) string {
			done, err := p.ParseRequestLine(w)
			require.NoError(t, err)
			require.True(t, done)

			done, err = p.ParseHeaders(w)
			require.NoError(t, err)
			require.True(t, done)

			body, _, err := collectContent(p.Parser, w)
			require.NoError(t, err)

			return string(body)
		}

		input := []byte(
			"POST /a HTTP/1.1\r\nContent-Length: 3\r\n\r\nabc" +
				"POST /b HTTP/1.1\r\nContent-Length: 3\r\n\r\ndef",
		)

		p, c := newBoundRequestParser(config.Default())
		w := NewWindow(input)

		require.Equal(t, "abc", parseOne(w, p))
		require.Equal(t, "/a", c.Target)

		p.Reset()
		c.Reset()

		require.Equal(t, "def", parseOne(w, p))
		require.Equal(t, "/b", c.Target)
	})
}
