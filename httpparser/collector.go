package httpparser

import (
	"github.com/drift-web/drift/http/method"
	"github.com/drift-web/drift/http/proto"
	"github.com/drift-web/drift/kv"
)

// Collector is a ready-made sink that accumulates everything the parser
// reports. Header and trailer values alias the parser's internal buffer and
// stay valid until the parser is reset.
type Collector struct {
	Method   method.Method
	Target   string
	Proto    proto.Protocol
	Code     int
	Reason   string
	Headers  *kv.Storage
	Trailers *kv.Storage
	parser   *Parser
}

func NewCollector() *Collector {
	return &Collector{
		Headers:  kv.New(),
		Trailers: kv.New(),
	}
}

// Bind attaches the collector to the parser it feeds, letting it tell
// trailers apart from ordinary headers.
func (c *Collector) Bind(p *Parser) {
	c.parser = p
}

func (c *Collector) OnRequestLine(m method.Method, target string, p proto.Protocol) error {
	c.Method = m
	c.Target = target
	c.Proto = p

	return nil
}

func (c *Collector) OnStatusLine(p proto.Protocol, code int, reason string) error {
	c.Proto = p
	c.Code = code
	c.Reason = reason

	return nil
}

func (c *Collector) OnHeader(name, value string) bool {
	if c.parser != nil && c.parser.InTrailers() {
		c.Trailers.Add(name, value)
	} else {
		c.Headers.Add(name, value)
	}

	return false
}

// MayHaveBody answers from what the message's first line promised: bodyless
// request methods and bodyless response codes say no, everything else yes.
func (c *Collector) MayHaveBody() bool {
	switch c.Method {
	case method.GET, method.HEAD, method.OPTIONS, method.TRACE, method.CONNECT:
		return false
	case method.Unknown:
	default:
		return true
	}

	if c.Code != 0 {
		return c.Code >= 200 && c.Code != 204 && c.Code != 304
	}

	return true
}

func (c *Collector) Reset() {
	c.Method = method.Unknown
	c.Target = ""
	c.Proto = proto.Unknown
	c.Code = 0
	c.Reason = ""
	c.Headers.Clear()
	c.Trailers.Clear()
}
