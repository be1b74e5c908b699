package pdf

import (
	"bytes"
	"fmt"
)

// samplePage1Content mixes a cap style, text blocks and a filled line, the
// way the two-page "simple PDF" everyone tests against does.
const samplePage1Content = "2 J\r\n" +
	"BT\r\n" +
	"0 0 0 rg\r\n" +
	"/F1 0027 Tf\r\n" +
	"57.3750 722.2800 Td\r\n" +
	"( A Simple PDF File ) Tj\r\n" +
	"ET\r\n" +
	"500 500 m\r\n" +
	"600 600 l\r\n" +
	"f\r\n"

const samplePage2Content = "BT\r\n" +
	"/F1 0010 Tf\r\n" +
	"69.2500 688.6080 Td\r\n" +
	"( ...continued from page 1. Yet more text. ) Tj\r\n" +
	"ET\r\n"

// buildSamplePDF assembles a two-page document with eleven objects and a
// standard xref table. With corruptXref set, the table's offsets are
// shifted so that entry validation fails and loading has to fall back to
// scanning for object headers.
func buildSamplePDF(corruptXref bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.3\r\n")

	offsets := make(map[int]int)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\r\n%s\r\nendobj\r\n", num, body)
	}
	writeStreamObj := func(num int, content string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\r\n<< /Length %d >>\r\nstream\r\n%sendstream\r\nendobj\r\n",
			num, len(content), content)
	}

	writeObj(1, "<< /Type /Catalog /Outlines 2 0 R /Pages 3 0 R >>")
	writeObj(2, "<< /Type /Outlines /Count 0 >>")
	writeObj(3, "<< /Type /Pages /Count 2 /Kids [ 4 0 R 6 0 R ] >>")
	writeObj(4, "<< /Type /Page /Parent 3 0 R /Resources << /Font << /F1 9 0 R >> "+
		"/ProcSet 8 0 R >> /MediaBox [0 0 612.0000 792.0000] /Contents 5 0 R >>")
	writeStreamObj(5, samplePage1Content)
	writeObj(6, "<< /Type /Page /Parent 3 0 R /Resources << /Font << /F1 9 0 R >> "+
		"/ProcSet 8 0 R >> /MediaBox [0 0 612.0000 792.0000] /Contents 7 0 R >>")
	writeStreamObj(7, samplePage2Content)
	writeObj(8, "[ /PDF /Text ]")
	writeObj(9, "<< /Type /Font /Subtype /Type1 /Name /F1 /BaseFont /Helvetica "+
		"/Encoding /MacRomanEncoding >>")
	writeObj(10, "<< /Creator (pathkit sample) /Producer (pathkit) >>")
	writeObj(11, "<< /Type /Metadata >>")

	xrefOffset := buf.Len()
	buf.WriteString("xref\r\n0 12\r\n")
	buf.WriteString("0000000000 65535 f \r\n")
	for num := 1; num <= 11; num++ {
		offset := offsets[num]
		if corruptXref {
			offset += 3
		}
		fmt.Fprintf(&buf, "%010d 00000 n \r\n", offset)
	}
	buf.WriteString("trailer\r\n<< /Size 12 /Root 1 0 R /Info 10 0 R >>\r\n")
	fmt.Fprintf(&buf, "startxref\r\n%d\r\n%%%%EOF\r\n", xrefOffset)

	return buf.Bytes()
}
