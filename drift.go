package drift

import (
	"github.com/drift-web/drift/config"
	"github.com/drift-web/drift/httpparser"
)

// NewParser returns a message parser with the default configuration. The
// request line or status line must be consumed by the caller beforehand.
func NewParser(sink httpparser.Sink) *httpparser.Parser {
	return httpparser.New(config.Default(), sink)
}

// NewRequestParser returns a request parser with the default configuration.
func NewRequestParser(sink httpparser.RequestSink) *httpparser.RequestParser {
	return httpparser.NewRequestParser(config.Default(), sink)
}

// NewResponseParser returns a response parser with the default configuration.
func NewResponseParser(sink httpparser.ResponseSink) *httpparser.ResponseParser {
	return httpparser.NewResponseParser(config.Default(), sink)
}

// CollectRequest returns a request parser wired to a fresh collector.
func CollectRequest() (*httpparser.RequestParser, *httpparser.Collector) {
	c := httpparser.NewCollector()
	p := httpparser.NewRequestParser(config.Default(), c)
	c.Bind(p.Parser)

	return p, c
}

// CollectResponse returns a response parser wired to a fresh collector.
func CollectResponse() (*httpparser.ResponseParser, *httpparser.Collector) {
	c := httpparser.NewCollector()
	p := httpparser.NewResponseParser(config.Default(), c)
	c.Bind(p.Parser)

	return p, c
}
