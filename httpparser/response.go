package httpparser

import (
	"github.com/drift-web/drift/config"
	"github.com/drift-web/drift/http/proto"
	"github.com/drift-web/drift/http/status"
)

type statusLineState uint8

const (
	slStart statusLineState = iota + 1
	slProto
	slCode
	slReason
	slDone
)

// ResponseParser parses response messages: a status line followed by headers
// and an optional body. A response whose headers define no framing while the
// sink claims a body is delimited by the end of the connection, unlike a
// request.
type ResponseParser struct {
	*Parser
	rsink   ResponseSink
	slstate statusLineState
	proto   proto.Protocol
	code    int
}

func NewResponseParser(cfg *config.Config, sink ResponseSink) *ResponseParser {
	return &ResponseParser{
		Parser:  New(cfg, sink),
		rsink:   sink,
		slstate: slStart,
	}
}

// ParseStatusLine consumes the status line. done=false with a nil error
// means the window ran dry; call again with more input.
func (p *ResponseParser) ParseStatusLine(w *Window) (done bool, err error) {
	var ch byte

	switch p.slstate {
	case slStart:
		p.resetLimit(p.cfg.RequestLine.SizeLimit)
		p.slstate = slProto
		goto protocol
	case slProto:
		goto protocol
	case slCode:
		goto code
	case slReason:
		goto reason
	case slDone:
		p.Shutdown()
		return false, status.ErrParserIsDone
	default:
		panic("unreachable code")
	}

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
		if ch == ' ' {
			break
		}

		if err = p.putByte(ch); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	p.proto = proto.Parse(p.takeString())
	if p.proto == proto.Unknown {
		p.Shutdown()
		return false, status.ErrUnsupportedProtocol
	}

	p.slstate = slCode

code:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return false, err
		}
		if ch == 0 {
			return false, nil
		}
		if ch == ' ' || ch == '\n' {
			break
		}

		if ch < '0' || ch > '9' {
			p.Shutdown()
			return false, status.ErrBadStatusCode
		}

		if err = p.putByte(ch); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	{
		digits := p.takeString()
		if len(digits) != 3 || digits[0] < '1' || digits[0] > '5' {
			p.Shutdown()
			return false, status.ErrBadStatusCode
		}

		p.code = int(digits[0]-'0')*100 + int(digits[1]-'0')*10 + int(digits[2]-'0')
	}

	if ch == '\n' {
		goto finish
	}

	p.slstate = slReason

reason:
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

finish:
	if err = p.rsink.OnStatusLine(p.proto, p.code, p.takeString()); err != nil {
		p.Shutdown()
		return false, err
	}

	p.slstate = slDone

	return true, nil
}

// ParseHeaders consumes header lines. When the section ends without any
// framing header while the sink still claims a body, the body runs until the
// end of the connection.
func (p *ResponseParser) ParseHeaders(w *Window) (done bool, err error) {
	done, err = p.Parser.ParseHeaders(w)
	if done && err == nil && p.HeadersComplete() && p.framing == FramingUnknown {
		p.framing = FramingEOF
	}

	return done, err
}

// Code returns the parsed status code, or zero before the status line was
// consumed.
func (p *ResponseParser) Code() int {
	return p.code
}

// StatusLineComplete reports whether the status line was fully consumed.
func (p *ResponseParser) StatusLineComplete() bool {
	return p.slstate == slDone
}

func (p *ResponseParser) Reset() {
	p.Parser.Reset()
	p.slstate = slStart
	p.proto = proto.Unknown
	p.code = 0
}
