package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// log reports skipped objects and xref fallbacks during document loading.
var log = logrus.StandardLogger()

// SetLogger replaces the package logger.
func SetLogger(l *logrus.Logger) { log = l }

// tailSearchLen bounds the search for the final startxref and trailer
// keywords, which appear in the last 1024 bytes by convention.
const tailSearchLen = 1024

// headerSearchLen bounds the search for the %PDF-M.N version header.
const headerSearchLen = 50

// Document is a parsed PDF file. It is constructed once from a byte
// buffer and immutable afterwards; the buffer must outlive it.
type Document struct {
	data []byte

	Version float64
	Xref    *Xref
	Trailer *Dictionary

	objects map[ObjectID]Object
	ids     []ObjectID
}

// Open reads and parses a PDF file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Load parses a PDF document from its raw bytes. Objects that fail to
// parse are logged and skipped so a damaged file still yields a partial
// document; a failed xref table falls back to scanning the whole buffer
// for object headers.
func Load(data []byte) (*Document, error) {
	version, err := parseVersion(data)
	if err != nil {
		return nil, err
	}

	xref, trailer, err := makeXrefTable(data)
	if err != nil {
		return nil, err
	}

	if trailer.Has("Encrypt") {
		return nil, ErrEncrypted
	}

	doc := &Document{
		data:    data,
		Version: version,
		Xref:    xref,
		Trailer: trailer,
		objects: make(map[ObjectID]Object),
	}
	if err := doc.loadObjects(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseVersion reads the %PDF-M.N header from the first 50 bytes.
func parseVersion(data []byte) (float64, error) {
	head := data
	if len(head) > headerSearchLen {
		head = head[:headerSearchLen]
	}
	idx := bytes.Index(head, []byte("%PDF-"))
	if idx < 0 {
		return 0, &SyntaxError{Offset: 0, Msg: "missing %PDF header"}
	}
	s := newScanner(data, 0)
	s.pos = idx + len("%PDF-")
	obj, err := s.readNumber()
	if err != nil {
		return 0, err
	}
	return AsFloat(obj)
}

// makeXrefTable builds the cross-reference table and trailer, preferring
// the startxref route and falling back to a full scan when the table is
// missing or lies about its offsets.
func makeXrefTable(data []byte) (*Xref, *Dictionary, error) {
	xref, trailer, err := makeXrefTableFromEOF(data)
	if err == nil {
		return xref, trailer, nil
	}
	log.WithError(err).Debug("xref table unusable, scanning for object headers")

	xref, trailer, ferr := makeXrefTableManually(data)
	if ferr != nil {
		return nil, nil, fmt.Errorf("no usable xref table: %w (fallback: %v)", err, ferr)
	}
	return xref, trailer, nil
}

// makeXrefTableFromEOF locates the final startxref keyword, parses the
// table and trailer it points at, and probes every in-use entry's offset.
func makeXrefTableFromEOF(data []byte) (*Xref, *Dictionary, error) {
	offset, err := finalStartXref(data)
	if err != nil {
		return nil, nil, err
	}
	if offset < 0 || offset >= int64(len(data)) {
		return nil, nil, &SyntaxError{Offset: offset, Msg: "startxref offset outside file"}
	}

	s := newScanner(data, 0)
	s.pos = int(offset)
	xref, err := parseXrefSections(s)
	if err != nil {
		return nil, nil, err
	}

	s.skipWhitespace()
	if !s.matchKeyword("trailer") {
		return nil, nil, s.errorf("expected trailer after xref table")
	}
	trailer, err := parseTrailerDict(&Parser{s: s})
	if err != nil {
		return nil, nil, err
	}

	if err := validateXref(data, xref); err != nil {
		return nil, nil, err
	}
	return xref, trailer, nil
}

// finalStartXref returns the offset recorded by the last startxref keyword
// in the file's tail.
func finalStartXref(data []byte) (int64, error) {
	start := len(data) - tailSearchLen
	if start < 0 {
		start = 0
	}
	idx := bytes.LastIndex(data[start:], []byte("startxref"))
	if idx < 0 {
		return 0, &SyntaxError{Offset: int64(len(data)), Msg: "startxref not found"}
	}
	s := newScanner(data, 0)
	s.pos = start + idx + len("startxref")
	s.skipWhitespace()
	v, err := s.readUint()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// parseXrefSections reads the xref keyword and one or more sub-sections of
// the form "first count" followed by count entries.
func parseXrefSections(s *scanner) (*Xref, error) {
	s.skipWhitespace()
	if !s.matchKeyword("xref") {
		return nil, s.errorf("expected xref keyword")
	}

	xref := NewXref()
	sections := 0
	for {
		s.skipWhitespace()
		if s.atKeyword("trailer") || s.eof() {
			break
		}
		first, err := s.readUint()
		if err != nil {
			return nil, err
		}
		s.skipWhitespace()
		count, err := s.readUint()
		if err != nil {
			return nil, err
		}
		for i := uint64(0); i < count; i++ {
			s.skipWhitespace()
			offset, err := s.readUint()
			if err != nil {
				return nil, err
			}
			s.skipWhitespace()
			generation, err := s.readUint()
			if err != nil {
				return nil, err
			}
			s.skipWhitespace()
			var entry XrefEntry
			switch s.peek() {
			case 'n':
				entry = InUseEntry(int64(offset), uint16(generation))
			case 'f':
				entry = FreeEntry()
			default:
				return nil, s.errorf("expected n or f in xref entry")
			}
			s.pos++
			xref.Insert(uint32(first+i), entry)
		}
		sections++
	}
	if sections == 0 {
		return nil, s.errorf("xref table has no sections")
	}
	return xref, nil
}

// validateXref confirms that every in-use entry's offset really is the
// start of the object header it claims.
func validateXref(data []byte, xref *Xref) error {
	for _, number := range xref.ObjectNumbers() {
		entry, _ := xref.Entry(number)
		if entry.Kind != XrefInUse {
			continue
		}
		expected := ObjectID{Number: number, Generation: entry.Generation}
		if entry.Offset < 0 || entry.Offset >= int64(len(data)) {
			return &InvalidEntryError{ID: expected}
		}
		p := NewParser(data)
		p.Seek(entry.Offset)
		found, err := p.parseObjectHeader()
		if err != nil {
			return &InvalidEntryError{ID: expected}
		}
		if found != expected {
			return &WrongObjectError{Expected: expected, Found: found}
		}
	}
	return nil
}

// makeXrefTableManually synthesizes an xref by scanning the whole buffer
// for N G obj headers, and reads the last trailer dictionary in the tail.
func makeXrefTableManually(data []byte) (*Xref, *Dictionary, error) {
	xref := NewXref()
	for _, header := range findAllObjectHeaders(data) {
		xref.Insert(header.id.Number, InUseEntry(header.offset, header.id.Generation))
	}
	if xref.Len() == 0 {
		return nil, nil, &SyntaxError{Offset: 0, Msg: "no object headers found"}
	}

	start := len(data) - tailSearchLen
	if start < 0 {
		start = 0
	}
	idx := bytes.LastIndex(data[start:], []byte("trailer"))
	if idx < 0 {
		return nil, nil, &SyntaxError{Offset: int64(len(data)), Msg: "trailer not found"}
	}
	p := NewParser(data)
	p.Seek(int64(start + idx + len("trailer")))
	trailer, err := parseTrailerDict(p)
	if err != nil {
		return nil, nil, err
	}
	return xref, trailer, nil
}

func parseTrailerDict(p *Parser) (*Dictionary, error) {
	obj, err := p.ParseObject()
	if err != nil {
		return nil, err
	}
	return AsDict(obj)
}

type objectHeader struct {
	id     ObjectID
	offset int64
}

// findAllObjectHeaders scans for every N G obj header in the buffer.
func findAllObjectHeaders(data []byte) []objectHeader {
	var headers []objectHeader
	p := NewParser(data)
	for i := 0; i < len(data); {
		if !isDigit(data[i]) {
			i++
			continue
		}
		p.Seek(int64(i))
		id, err := p.parseObjectHeader()
		if err == nil {
			headers = append(headers, objectHeader{id: id, offset: int64(i)})
			i = p.s.pos
			continue
		}
		// Skip the digit run that failed to parse as a header.
		for i < len(data) && isDigit(data[i]) {
			i++
		}
	}
	return headers
}

// loadObjects parses every in-use entry's object in ascending object
// number order. Parse failures are logged and skipped.
func (d *Document) loadObjects() error {
	for _, number := range d.Xref.ObjectNumbers() {
		entry, _ := d.Xref.Entry(number)
		switch entry.Kind {
		case XrefFree:
			continue
		case XrefCompressed:
			return fmt.Errorf("%w: compressed xref entry for object %d", ErrUnsupported, number)
		}

		p := NewParser(d.data)
		p.Seek(entry.Offset)
		id, obj, err := p.ParseIndirectObject()
		if err != nil {
			log.WithFields(logrus.Fields{
				"object": number,
				"offset": entry.Offset,
			}).WithError(err).Warn("skipping unparseable object")
			continue
		}
		if _, dup := d.objects[id]; !dup {
			d.ids = append(d.ids, id)
		}
		d.objects[id] = obj
	}
	return nil
}

// ObjectIDs returns the loaded object ids in ascending object number
// order.
func (d *Document) ObjectIDs() []ObjectID { return d.ids }

// GetObject returns the object with the given id.
func (d *Document) GetObject(id ObjectID) (Object, error) {
	obj, ok := d.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrObjectNotFound, id)
	}
	return obj, nil
}

// Resolve follows obj through one level of indirection. Non-references
// come back unchanged.
func (d *Document) Resolve(obj Object) (Object, error) {
	ref, ok := obj.(Reference)
	if !ok {
		return obj, nil
	}
	return d.GetObject(ref.ID())
}

// GetCatalog returns the document catalog referenced by the trailer.
func (d *Document) GetCatalog() (*Dictionary, error) {
	rootObj, err := d.Trailer.Lookup("Root")
	if err != nil {
		return nil, err
	}
	root, err := AsReference(rootObj)
	if err != nil {
		return nil, err
	}
	obj, err := d.GetObject(root)
	if err != nil {
		return nil, err
	}
	return AsDict(obj)
}

// GetPageIDs returns the object ids of the pages in the catalog's pages
// tree, in Kids order.
func (d *Document) GetPageIDs() ([]ObjectID, error) {
	catalog, err := d.GetCatalog()
	if err != nil {
		return nil, err
	}
	pagesObj, err := catalog.Lookup("Pages")
	if err != nil {
		return nil, err
	}
	pagesRef, err := AsReference(pagesObj)
	if err != nil {
		return nil, err
	}
	obj, err := d.GetObject(pagesRef)
	if err != nil {
		return nil, err
	}
	pages, err := AsDict(obj)
	if err != nil {
		return nil, err
	}
	kidsObj, err := pages.Lookup("Kids")
	if err != nil {
		return nil, err
	}
	kids, err := AsArray(kidsObj)
	if err != nil {
		return nil, err
	}

	ids := make([]ObjectID, 0, len(kids))
	for _, kid := range kids {
		id, err := AsReference(kid)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PageContents returns the page's content stream bytes. A Contents entry
// holding an array of references yields the streams concatenated in order.
func (d *Document) PageContents(pageID ObjectID) ([]byte, error) {
	pageObj, err := d.GetObject(pageID)
	if err != nil {
		return nil, err
	}
	page, err := AsDict(pageObj)
	if err != nil {
		return nil, err
	}
	contentsObj, err := page.Lookup("Contents")
	if err != nil {
		return nil, err
	}
	contents, err := d.Resolve(contentsObj)
	if err != nil {
		return nil, err
	}

	switch v := contents.(type) {
	case Stream:
		return v.Content, nil
	case Array:
		var buf bytes.Buffer
		for _, part := range v {
			obj, err := d.Resolve(part)
			if err != nil {
				return nil, err
			}
			stream, err := AsStream(obj)
			if err != nil {
				return nil, err
			}
			buf.Write(stream.Content)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	}
	return nil, castError(contents, "Stream")
}

// Rectangle is a PDF rectangle given by two corners.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the rectangle's horizontal extent.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the rectangle's vertical extent.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// PageMediaBox returns the page's MediaBox.
func (d *Document) PageMediaBox(pageID ObjectID) (Rectangle, error) {
	pageObj, err := d.GetObject(pageID)
	if err != nil {
		return Rectangle{}, err
	}
	page, err := AsDict(pageObj)
	if err != nil {
		return Rectangle{}, err
	}
	boxObj, err := page.Lookup("MediaBox")
	if err != nil {
		return Rectangle{}, err
	}
	boxArr, err := AsArray(boxObj)
	if err != nil {
		return Rectangle{}, err
	}
	if len(boxArr) != 4 {
		return Rectangle{}, fmt.Errorf("%w: MediaBox with %d elements", ErrObjectCast, len(boxArr))
	}
	var vals [4]float64
	for i, obj := range boxArr {
		v, err := AsFloat(obj)
		if err != nil {
			return Rectangle{}, err
		}
		vals[i] = v
	}
	return Rectangle{LLX: vals[0], LLY: vals[1], URX: vals[2], URY: vals[3]}, nil
}
