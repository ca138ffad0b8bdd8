package httpparser

import (
	"io"

	"github.com/drift-web/drift/config"
	"github.com/drift-web/drift/http/status"
	"github.com/drift-web/drift/internal/hexconv"
	"github.com/drift-web/drift/internal/uintconv"
	"github.com/indigo-web/utils/strcomp"
)

// chunkHeaderSizeLimit bounds a single chunk-size line, extensions included.
const chunkHeaderSizeLimit = 256

// Parser is an incremental HTTP/1.x message parser. It consumes bytes from
// caller-supplied windows and reports headers and body content through a Sink.
// A single instance handles the header section, the body, and trailers of one
// message; Reset prepares it for the next one.
type Parser struct {
	tokenizer
	cfg              *config.Config
	sink             Sink
	hstate           headerState
	cstate           chunkState
	framing          Framing
	contentLength    int64
	contentDelivered int64
	chunkLength      int64
	chunkPos         int64
	headerName       string
}

func New(cfg *config.Config, sink Sink) *Parser {
	p := &Parser{
		tokenizer: newTokenizer(cfg.Buffers),
		cfg:       cfg,
		sink:      sink,
	}
	p.Reset()

	return p
}

// ParseHeaders consumes header lines from the window. It returns done=true
// when the final empty line of the section was consumed, or when the sink
// requested a yield after a header; distinguish the two via HeadersComplete.
// done=false with a nil error means the window ran dry mid-section.
func (p *Parser) ParseHeaders(w *Window) (done bool, err error) {
	var ch byte

	switch p.hstate {
	case hsStart:
		p.resetLimit(p.cfg.Headers.SectionSizeLimit)
		p.hstate = hsName
		goto name
	case hsName:
		goto name
	case hsSpace:
		goto space
	case hsValue:
		goto value
	case hsEnd:
		p.Shutdown()
		return false, status.ErrParserIsDone
	default:
		panic("unreachable code")
	}

name:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return false, err
		}
		if ch == 0 {
			return false, nil
		}
		if ch == ':' || ch == '\n' {
			break
		}

		if err = p.putByte(ch); err != nil {
			p.Shutdown()
			return false, err
		}
	}

	if ch == '\n' {
		if p.bufferLen() == 0 {
			p.hstate = hsEnd
			if p.cstate == csTrailers {
				p.Shutdown()
			} else if p.framing == FramingUnknown && !p.sink.MayHaveBody() {
				p.framing = FramingNone
			}

			return true, nil
		}

		// A line without a colon still names a header, just a valueless one.
		if p.sink.OnHeader(p.takeString(), "") {
			return true, nil
		}

		goto name
	}

	if p.bufferLen() == 0 {
		p.Shutdown()
		return false, status.ErrEmptyHeaderName
	}

	p.headerName = p.takeString()
	p.hstate = hsSpace

space:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return false, err
		}
		if ch == 0 {
			return false, nil
		}
		if ch != ' ' && ch != '\t' {
			break
		}
	}

	if ch == '\n' {
		p.Shutdown()
		return false, status.MissingHeaderValue(p.headerName)
	}

	if err = p.putByte(ch); err != nil {
		p.Shutdown()
		return false, err
	}

	p.hstate = hsValue

value:
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
		value, verr := p.takeTrimmedString()
		if verr != nil {
			p.Shutdown()
			return false, status.MissingHeaderValue(p.headerName)
		}

		if p.cstate != csTrailers && p.framing == FramingUnknown {
			if err = p.detectFraming(p.headerName, value); err != nil {
				p.Shutdown()
				return false, err
			}
		}

		p.hstate = hsName
		if p.sink.OnHeader(p.headerName, value) {
			return true, nil
		}
	}

	goto name
}

// detectFraming inspects a header for body-delimiting semantics. Only the
// first framing header wins; later ones pass through as ordinary headers.
func (p *Parser) detectFraming(name, value string) error {
	switch {
	case strcomp.EqualFold(name, "transfer-encoding"):
		if !strcomp.EqualFold(value, "chunked") {
			return status.UnknownTransferEncoding(value)
		}

		p.framing = FramingChunked
	case strcomp.EqualFold(name, "content-length"):
		length, ok := uintconv.Parse(value)
		if !ok {
			return status.InvalidContentLength(value)
		}

		if length == 0 {
			p.framing = FramingNone
		} else {
			p.framing = FramingLength
			p.contentLength = length
		}
	}

	return nil
}

// ParseContent consumes body bytes from the window. Returned slices are views
// into the window's memory. io.EOF signals the end of the message body; a
// final content slice may accompany it. A nil slice with a nil error means
// the window ran dry.
func (p *Parser) ParseContent(w *Window) ([]byte, error) {
	switch p.framing {
	case FramingUnknown:
		// No framing header arrived. Even if the sink claimed a body, the
		// message is treated as bodyless and ends right after its headers.
		p.framing = FramingNone
		p.Shutdown()
		return nil, io.EOF
	case FramingNone:
		p.Shutdown()
		return nil, io.EOF
	case FramingLength:
		return p.lengthContent(w)
	case FramingChunked:
		return p.chunkedContent(w)
	case FramingEOF:
		return p.eofContent(w)
	default:
		return nil, status.ErrParserIsDone
	}
}

func (p *Parser) lengthContent(w *Window) ([]byte, error) {
	if p.cstate == csEnd {
		return nil, io.EOF
	}

	remaining := p.contentLength - p.contentDelivered
	if int64(w.Remaining()) >= remaining {
		out := w.SubmitPartial(int(remaining))
		p.contentDelivered = p.contentLength
		p.Shutdown()

		return out, io.EOF
	}

	p.contentDelivered += int64(w.Remaining())
	if w.Empty() {
		return nil, nil
	}

	return w.Submit(), nil
}

func (p *Parser) chunkedContent(w *Window) ([]byte, error) {
	var (
		ch   byte
		err  error
		out  []byte
		done bool
	)

	switch p.cstate {
	case csStart:
		p.resetLimit(chunkHeaderSizeLimit)
		p.cstate = csSize
		goto size
	case csSize:
		goto size
	case csParams:
		goto params
	case csBody:
		goto body
	case csLF:
		goto lf
	case csTrailers:
		goto trailers
	case csEnd:
		return nil, io.EOF
	default:
		panic("unreachable code")
	}

size:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return nil, err
		}
		if ch == 0 {
			return nil, nil
		}

		if ch == ' ' || ch == '\t' || ch == ';' {
			p.cstate = csParams
			goto params
		}

		if ch == '\n' {
			break
		}

		halfbyte := hexconv.Halfbyte[ch]
		if halfbyte == 0xFF {
			p.Shutdown()
			return nil, status.ErrBadChunk
		}

		p.chunkLength = p.chunkLength<<4 | int64(halfbyte)
		if p.chunkLength > p.cfg.Body.MaxChunkSize {
			p.Shutdown()
			return nil, status.ErrChunkTooLarge
		}
	}

	goto sized

params:
	for {
		ch, err = p.next(w)
		if err != nil {
			p.Shutdown()
			return nil, err
		}
		if ch == 0 {
			return nil, nil
		}
		if ch == '\n' {
			break
		}
	}

sized:
	if p.chunkLength == 0 {
		p.hstate = hsStart
		p.cstate = csTrailers
		goto trailers
	}

	p.cstate = csBody

body:
	{
		remaining := p.chunkLength - p.chunkPos
		if remaining <= int64(w.Remaining()) {
			out = w.SubmitPartial(int(remaining))
			p.chunkLength = 0
			p.chunkPos = 0
			p.cstate = csLF

			return out, nil
		}

		p.chunkPos += int64(w.Remaining())
		if w.Empty() {
			return nil, nil
		}

		return w.Submit(), nil
	}

lf:
	ch, err = p.next(w)
	if err != nil {
		p.Shutdown()
		return nil, err
	}
	if ch == 0 {
		return nil, nil
	}
	if ch != '\n' {
		p.Shutdown()
		return nil, status.ErrBadChunk
	}

	p.resetLimit(chunkHeaderSizeLimit)
	p.cstate = csSize
	goto size

trailers:
	done, err = p.ParseHeaders(w)
	if err != nil {
		return nil, err
	}
	if done && p.HeadersComplete() {
		return nil, io.EOF
	}

	return nil, nil
}

func (p *Parser) eofContent(w *Window) ([]byte, error) {
	if p.cstate == csEnd {
		return nil, io.EOF
	}
	if w.Empty() {
		return nil, nil
	}

	return w.Submit(), nil
}

// HeadersComplete reports whether the whole header section, trailers included
// once entered, has been consumed.
func (p *Parser) HeadersComplete() bool {
	return p.hstate == hsEnd
}

// ContentComplete reports whether all body content has been delivered. EOF
// framing never completes on its own; the connection's end decides.
func (p *Parser) ContentComplete() bool {
	switch p.framing {
	case FramingNone:
		return true
	case FramingLength:
		return p.contentDelivered == p.contentLength && p.cstate == csEnd
	case FramingChunked, FramingEOF:
		return p.cstate == csEnd
	default:
		return false
	}
}

// IsChunked reports whether the body uses chunked transfer encoding.
func (p *Parser) IsChunked() bool {
	return p.framing == FramingChunked
}

// InTrailers reports whether the parser is inside the trailer section of a
// chunked body.
func (p *Parser) InTrailers() bool {
	return p.cstate == csTrailers
}

// DefinedContentLength reports whether the body is delimited by an explicit
// Content-Length header.
func (p *Parser) DefinedContentLength() bool {
	return p.framing == FramingLength
}

// ContentType returns the detected body framing.
func (p *Parser) ContentType() Framing {
	return p.framing
}

// ContentLength returns the value of the Content-Length header, or zero when
// the body is framed otherwise.
func (p *Parser) ContentLength() int64 {
	return p.contentLength
}

// Shutdown moves the parser into its terminal state, dropping any partially
// accumulated token. Any input left over belongs to the connection, not to
// the current message. Idempotent.
func (p *Parser) Shutdown() {
	p.clearBuffer()
	p.hstate = hsEnd
	if p.framing == FramingUnknown {
		p.framing = FramingEOF
	}
	p.cstate = csEnd
}

// Reset prepares the parser for the next message on the same connection.
func (p *Parser) Reset() {
	p.resetTokenizer()
	p.hstate = hsStart
	p.cstate = csStart
	p.framing = FramingUnknown
	p.contentLength = 0
	p.contentDelivered = 0
	p.chunkLength = 0
	p.chunkPos = 0
	p.headerName = ""
}
