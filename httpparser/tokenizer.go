package httpparser

import (
	"github.com/drift-web/drift/config"
	"github.com/drift-web/drift/http/status"
	"github.com/drift-web/drift/internal/buffer"
	"github.com/indigo-web/utils/uf"
)

// tokenizer is the shared base of all the parsers: a byte-at-a-time reader
// over the caller's window, an accumulation buffer holding the token being
// built, and a resettable counter enforcing per-phase size limits. Every
// consumed byte passes through next, making it the single chokepoint for
// limit accounting.
type tokenizer struct {
	acc       buffer.Buffer
	limit     int
	sawCR     bool
}

func newTokenizer(cfg config.Buffers) tokenizer {
	return tokenizer{
		acc: buffer.New(cfg.InitialSize, cfg.SizeLimit),
	}
}

// resetLimit installs a new size-limit checkpoint of n bytes. Called when a
// bounded phase begins: a header block, a chunk header.
func (t *tokenizer) resetLimit(n int) {
	t.limit = n
}

// next returns the next byte of the window, or 0 when no more bytes are
// available right now. CR is consumed here and must be immediately followed
// by LF, which keeps line handling downstream LF-only.
func (t *tokenizer) next(w *Window) (byte, error) {
	for {
		ch := w.next()
		if ch == 0 {
			return 0, nil
		}

		if t.limit--; t.limit < 0 {
			return 0, status.ErrSizeLimitExceeded
		}

		if t.sawCR {
			if ch != '\n' {
				return 0, status.ErrBadLineBreak
			}

			t.sawCR = false
			return ch, nil
		}

		if ch == '\r' {
			t.sawCR = true
			continue
		}

		return ch, nil
	}
}

func (t *tokenizer) putByte(ch byte) error {
	if !t.acc.AppendByte(ch) {
		return status.ErrSizeLimitExceeded
	}

	return nil
}

func (t *tokenizer) bufferLen() int {
	return t.acc.SegmentLength()
}

// takeString completes the accumulated token. The returned string aliases the
// accumulation buffer and stays valid until the next Reset.
func (t *tokenizer) takeString() string {
	return uf.B2S(t.acc.Finish())
}

// takeTrimmedString completes the accumulated token with surrounding spaces
// and tabs stripped. A token that is empty after trimming is a BadRequest.
func (t *tokenizer) takeTrimmedString() (string, error) {
	segment := t.acc.Preview()

	begin := 0
	for begin < len(segment) && (segment[begin] == ' ' || segment[begin] == '\t') {
		begin++
	}

	end := len(segment)
	for end > begin && (segment[end-1] == ' ' || segment[end-1] == '\t') {
		end--
	}

	token := uf.B2S(t.acc.Finish()[begin:end])
	if len(token) == 0 {
		return "", status.ErrEmptyToken
	}

	return token, nil
}

func (t *tokenizer) clearBuffer() {
	t.acc.Discard()
}

func (t *tokenizer) resetTokenizer() {
	t.acc.Clear()
	t.limit = 0
	t.sawCR = false
}
