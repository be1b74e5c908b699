package pdf

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// pdfDocDifferences maps the PDFDocEncoding code points that differ from
// Latin-1. Unmapped positions decode as themselves.
var pdfDocDifferences = map[byte]rune{
	0x18: '˘', // breve
	0x19: 'ˇ', // caron
	0x1A: 'ˆ', // circumflex
	0x1B: '˙', // dot above
	0x1C: '˝', // double acute
	0x1D: '˛', // ogonek
	0x1E: '˚', // ring above
	0x1F: '˜', // small tilde
	0x80: '•', // bullet
	0x81: '†', // dagger
	0x82: '‡', // double dagger
	0x83: '…', // ellipsis
	0x84: '—', // em dash
	0x85: '–', // en dash
	0x86: 'ƒ',
	0x87: '⁄',
	0x88: '‹',
	0x89: '›',
	0x8A: '−',
	0x8B: '‰',
	0x8C: '„',
	0x8D: '“',
	0x8E: '”',
	0x8F: '‘',
	0x90: '’',
	0x91: '‚',
	0x92: '™',
	0x93: 'ﬁ',
	0x94: 'ﬂ',
	0x95: 'Ł',
	0x96: 'Œ',
	0x97: 'Š',
	0x98: 'Ÿ',
	0x99: 'Ž',
	0x9A: 'ı',
	0x9B: 'ł',
	0x9C: 'œ',
	0x9D: 'š',
	0x9E: 'ž',
	0xA0: '€', // euro
}

// Text decodes the string's bytes as text. A UTF-16BE BOM selects UTF-16,
// a UTF-8 BOM is stripped, and anything else is read as PDFDocEncoding.
func (s String) Text() string {
	value := s.Value
	if len(value) >= 2 && value[0] == 0xFE && value[1] == 0xFF {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		decoded, err := decoder.Bytes(value)
		if err == nil {
			return string(decoded)
		}
	}
	if len(value) >= 3 && bytes.Equal(value[:3], []byte{0xEF, 0xBB, 0xBF}) {
		return string(value[3:])
	}
	return decodePDFDocEncoding(value)
}

func decodePDFDocEncoding(value []byte) string {
	runes := make([]rune, 0, len(value))
	for _, b := range value {
		if r, ok := pdfDocDifferences[b]; ok {
			runes = append(runes, r)
			continue
		}
		runes = append(runes, rune(b))
	}
	return string(runes)
}
