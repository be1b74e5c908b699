package pdf

import (
	"fmt"
	"strings"
)

// DebugString renders an object on one line for log output. Unlike
// Object.String it shows references as (number, generation) pairs and
// previews stream payloads.
func DebugString(obj Object) string {
	var b strings.Builder
	writeDebug(&b, obj, -1)
	return b.String()
}

// DebugStringIndent renders an object across multiple indented lines.
func DebugStringIndent(obj Object) string {
	var b strings.Builder
	writeDebug(&b, obj, 0)
	return b.String()
}

const debugIndentUnit = 4
const debugStreamPreviewLen = 50

func writeDebug(b *strings.Builder, obj Object, depth int) {
	pretty := depth >= 0
	switch v := obj.(type) {
	case nil:
		b.WriteString("<nil>")
	case Null:
		b.WriteString("<null>")
	case Reference:
		fmt.Fprintf(b, "(%d, %d)", v.Number, v.Generation)
	case String:
		fmt.Fprintf(b, "%q", v.Value)
	case Array:
		b.WriteString("[")
		for i, item := range v {
			if pretty {
				b.WriteString("\n")
				writePad(b, (depth+1)*debugIndentUnit)
			} else if i == 0 {
				b.WriteString(" ")
			}
			writeDebug(b, item, childDepth(depth))
			if !pretty {
				b.WriteString(" ")
			} else if i == len(v)-1 {
				b.WriteString("\n")
				writePad(b, depth*debugIndentUnit)
			}
		}
		b.WriteString("]")
	case *Dictionary:
		writeDebugDict(b, v, depth)
	case Stream:
		preview := v.Content
		if len(preview) > debugStreamPreviewLen {
			preview = preview[:debugStreamPreviewLen]
		}
		b.WriteString("Stream => { Dict => ")
		writeDebugDict(b, v.Dict, childDepth(depth))
		fmt.Fprintf(b, ", Bytes (first %d) => %q }", debugStreamPreviewLen, preview)
	default:
		b.WriteString(obj.String())
	}
}

func writeDebugDict(b *strings.Builder, d *Dictionary, depth int) {
	pretty := depth >= 0
	b.WriteString("{")
	for _, key := range d.Keys() {
		if pretty {
			b.WriteString("\n")
			writePad(b, (depth+1)*debugIndentUnit)
		} else {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%s => ", key)
		writeDebug(b, d.Get(key), childDepth(depth))
		if !pretty {
			b.WriteString(",")
		}
	}
	if pretty {
		b.WriteString("\n")
		writePad(b, depth*debugIndentUnit)
	} else {
		b.WriteString(" ")
	}
	b.WriteString("}")
}

func childDepth(depth int) int {
	if depth < 0 {
		return -1
	}
	return depth + 1
}

func writePad(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
	}
}
