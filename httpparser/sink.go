package httpparser

import (
	"github.com/drift-web/drift/http/method"
	"github.com/drift-web/drift/http/proto"
)

// Sink receives parse events. Implementations are supplied by the caller and
// invoked synchronously, strictly in on-the-wire order.
type Sink interface {
	// OnHeader is invoked for each parsed header, trailers included. Returning
	// true makes the parser yield control back to the caller; parsing may be
	// resumed later with another ParseHeaders call.
	OnHeader(name, value string) bool
	// MayHaveBody is consulted once when the header block ends while the
	// framing is still undetermined. Returning false finishes the message
	// with no body.
	MayHaveBody() bool
}

// RequestSink additionally receives the parsed request line.
type RequestSink interface {
	Sink
	OnRequestLine(m method.Method, target string, p proto.Protocol) error
}

// ResponseSink additionally receives the parsed status line.
type ResponseSink interface {
	Sink
	OnStatusLine(p proto.Protocol, code int, reason string) error
}
