package httpparser

type headerState uint8

const (
	hsStart headerState = iota + 1
	hsName
	hsSpace
	hsValue
	hsEnd
)

type chunkState uint8

const (
	csStart chunkState = iota + 1
	csSize
	csParams
	csBody
	csLF
	csTrailers
	csEnd
)

// Framing describes how the end of a message body is determined.
type Framing uint8

const (
	// FramingUnknown means no framing header has been seen yet.
	FramingUnknown Framing = iota
	// FramingNone marks a message that carries no body at all.
	FramingNone
	// FramingLength delimits the body by an explicit Content-Length.
	FramingLength
	// FramingChunked delimits the body by chunked transfer encoding.
	FramingChunked
	// FramingSelfDefining is reserved for bodies whose content defines its
	// own boundary. No such content type is recognized at the moment.
	FramingSelfDefining
	// FramingEOF delimits the body by the end of the connection.
	FramingEOF
)

func (f Framing) String() string {
	lut := [...]string{
		FramingUnknown:      "unknown",
		FramingNone:         "none",
		FramingLength:       "content-length",
		FramingChunked:      "chunked",
		FramingSelfDefining: "self-defining",
		FramingEOF:          "eof",
	}
	if int(f) >= len(lut) {
		return ""
	}

	return lut[f]
}
