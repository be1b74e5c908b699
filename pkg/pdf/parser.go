package pdf

import (
	"bytes"
	"math"
)

// Parser parses PDF objects out of a byte buffer. Parsed names, strings
// and stream payloads alias the buffer.
type Parser struct {
	s *scanner
}

// NewParser creates a parser over the whole buffer.
func NewParser(data []byte) *Parser {
	return &Parser{s: newScanner(data, 0)}
}

// Seek positions the parser at an absolute byte offset.
func (p *Parser) Seek(offset int64) {
	p.s.pos = int(offset)
}

// ParseObject parses a single object of any type. Dispatch is by the first
// non-whitespace byte; two integers followed by R collapse to a reference.
func (p *Parser) ParseObject() (Object, error) {
	s := p.s
	s.skipWhitespace()
	if s.eof() {
		return nil, s.errorf("expected object, found end of input")
	}

	switch b := s.peek(); {
	case b == '/':
		s.pos++
		return s.readName()

	case b == '(':
		s.pos++
		value, err := s.readLiteralString()
		if err != nil {
			return nil, err
		}
		return String{Value: value, Format: Literal}, nil

	case b == '<':
		if s.peekAt(1) == '<' {
			s.pos += 2
			dict, err := p.parseDictionaryBody()
			if err != nil {
				return nil, err
			}
			return p.parseStreamAfterDict(dict)
		}
		s.pos++
		value, err := s.readHexString()
		if err != nil {
			return nil, err
		}
		return String{Value: value, Format: Hexadecimal}, nil

	case b == '[':
		s.pos++
		return p.parseArray()

	case isDigit(b):
		if ref, ok := p.tryReference(); ok {
			return ref, nil
		}
		return s.readNumber()

	case b == '+' || b == '-' || b == '.':
		return s.readNumber()

	default:
		if s.matchKeywordFold("null") {
			return Null{}, nil
		}
		if s.matchKeywordFold("true") {
			return Boolean(true), nil
		}
		if s.matchKeywordFold("false") {
			return Boolean(false), nil
		}
		return nil, s.errorf("unexpected byte %q at start of object", b)
	}
}

// tryReference attempts to read N G R at the current position, restoring
// the position when the input is not a reference.
func (p *Parser) tryReference() (Reference, bool) {
	s := p.s
	save := s.pos

	num, err := s.readUint()
	if err != nil || num > math.MaxUint32 {
		s.pos = save
		return Reference{}, false
	}
	s.skipWhitespace()
	gen, err := s.readUint()
	if err != nil || gen > math.MaxUint16 {
		s.pos = save
		return Reference{}, false
	}
	s.skipWhitespace()
	if !s.matchKeyword("R") {
		s.pos = save
		return Reference{}, false
	}
	return Reference{Number: uint32(num), Generation: uint16(gen)}, true
}

func (p *Parser) parseArray() (Array, error) {
	s := p.s
	var arr Array
	for {
		s.skipWhitespace()
		if s.eof() {
			return nil, s.errorf("unterminated array")
		}
		if s.peek() == ']' {
			s.pos++
			return arr, nil
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDictionaryBody parses << key value ... >> after the opening token.
// The balanced content is carved out first so a truncated dictionary fails
// early, then parsed as an alternating name/object sequence. Repeated keys
// keep their first position and the last value.
func (p *Parser) parseDictionaryBody() (*Dictionary, error) {
	s := p.s
	contentBase := s.offset()
	content, err := s.takeUntilUnmatched([]byte("<<"), []byte(">>"))
	if err != nil {
		return nil, err
	}

	inner := &Parser{s: newScanner(content, contentBase)}
	dict := NewDictionary()
	for {
		inner.s.skipWhitespace()
		if inner.s.eof() {
			return dict, nil
		}
		if inner.s.peek() != '/' {
			return nil, inner.s.errorf("expected name as dictionary key")
		}
		inner.s.pos++
		key, err := inner.s.readName()
		if err != nil {
			return nil, err
		}
		value, err := inner.ParseObject()
		if err != nil {
			return nil, err
		}
		dict.Set(key, value)
	}
}

// parseStreamAfterDict upgrades a dictionary to a stream when the stream
// keyword follows it. The payload is bounded by searching for endstream;
// the /Length entry is not trusted because producers lie about it.
func (p *Parser) parseStreamAfterDict(dict *Dictionary) (Object, error) {
	s := p.s
	save := s.pos
	s.skipWhitespace()
	if !s.matchKeyword("stream") {
		s.pos = save
		return dict, nil
	}

	// The keyword is followed by an end of line, then the payload.
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
	s.readEOL()

	start := s.pos
	idx := bytes.Index(s.rest(), []byte("endstream"))
	if idx < 0 {
		return nil, s.errorf("stream without endstream")
	}
	content := s.data[start : start+idx]
	s.pos = start + idx + len("endstream")

	// The end of line separating payload from endstream is not data.
	if n := len(content); n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
		if n > 1 && content[len(content)-1] == '\r' {
			content = content[:len(content)-1]
		}
	} else if n > 0 && content[n-1] == '\r' {
		content = content[:n-1]
	}

	return Stream{
		Dict:          dict,
		Content:       content,
		StartPosition: s.base + int64(start),
	}, nil
}

// parseObjectHeader reads an N G obj header at the current position.
func (p *Parser) parseObjectHeader() (ObjectID, error) {
	s := p.s
	s.skipWhitespace()
	num, err := s.readUint()
	if err != nil || num > math.MaxUint32 {
		return ObjectID{}, s.errorf("expected object number")
	}
	s.skipWhitespace()
	gen, err := s.readUint()
	if err != nil || gen > math.MaxUint16 {
		return ObjectID{}, s.errorf("expected generation number")
	}
	s.skipWhitespace()
	if !s.matchKeyword("obj") {
		return ObjectID{}, s.errorf("expected obj keyword")
	}
	return ObjectID{Number: uint32(num), Generation: uint16(gen)}, nil
}

// ParseIndirectObject parses N G obj <body> endobj at the current
// position. A missing endobj is tolerated; everything else is not.
func (p *Parser) ParseIndirectObject() (ObjectID, Object, error) {
	id, err := p.parseObjectHeader()
	if err != nil {
		return ObjectID{}, nil, err
	}
	obj, err := p.ParseObject()
	if err != nil {
		return ObjectID{}, nil, err
	}
	p.s.skipWhitespace()
	p.s.matchKeyword("endobj")
	return id, obj, nil
}
