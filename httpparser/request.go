package httpparser

import (
	"github.com/drift-web/drift/config"
	"github.com/drift-web/drift/http/method"
	"github.com/drift-web/drift/http/proto"
	"github.com/drift-web/drift/http/status"
)

type requestLineState uint8

const (
	rlStart requestLineState = iota + 1
	rlMethod
	rlTarget
	rlProto
	rlDone
)

// RequestParser parses request messages: a request line followed by headers
// and an optional body.
type RequestParser struct {
	*Parser
	rsink   RequestSink
	rlstate requestLineState
	method  method.Method
	target  string
}

func NewRequestParser(cfg *config.Config, sink RequestSink) *RequestParser {
	return &RequestParser{
		Parser:  New(cfg, sink),
		rsink:   sink,
		rlstate: rlStart,
	}
}

// ParseRequestLine consumes the request line. done=false with a nil error
// means the window ran dry; call again with more input.
func (p *RequestParser) ParseRequestLine(w *Window) (done bool, err error) {
	var ch byte

	switch p.rlstate {
	case rlStart:
		p.resetLimit(p.cfg.RequestLine.SizeLimit)
		p.rlstate = rlMethod
		goto parseMethod
	case rlMethod:
		goto parseMethod
	case rlTarget:
		goto target
	case rlProto:
		goto protocol
	case rlDone:
		p.Shutdown()
		return false, status.ErrParserIsDone
	default:
		panic("unreachable code")
	}

parseMethod:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return false, err
		}
		if ch == 0 {
			return false, nil
		}
		if ch == ' ' {
			break
		}

		if err = p.putByte(ch); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	p.method = method.Parse(p.takeString())
	if p.method == method.Unknown {
		p.Shutdown()
		return false, status.ErrUnknownMethod
	}

	p.rlstate = rlTarget

target:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return false, err
		}
		if ch == 0 {
			return false, nil
		}
		if ch == ' ' {
			break
		}

		if err = p.putByte(ch); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	if p.bufferLen() == 0 {
		p.Shutdown()
		return false, status.ErrEmptyRequestTarget
	}

	p.target = p.takeString()
	p.rlstate = rlProto

protocol:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return false, err
		}
		if ch == 0 {
			return false, nil
		}
		if ch == '\n' {
			break
		}

		if err = p.putByte(ch); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	{
		protocol := proto.Parse(p.takeString())
		if protocol == proto.Unknown {
			p.Shutdown()
			return false, status.ErrUnsupportedProtocol
		}

		if err = p.rsink.OnRequestLine(p.method, p.target, protocol); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	p.rlstate = rlDone

	return true, nil
}

// Method returns the parsed request method, or method.Unknown before the
// request line was consumed.
func (p *RequestParser) Method() method.Method {
	return p.method
}

// RequestLineComplete reports whether the request line was fully consumed.
func (p *RequestParser) RequestLineComplete() bool {
	return p.rlstate == rlDone
}

func (p *RequestParser) Reset() {
	p.Parser.Reset()
	p.rlstate = rlStart
	p.method = method.Unknown
	p.target = ""
}
