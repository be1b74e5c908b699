package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugStringOneLine(t *testing.T) {
	obj := parseOne(t, "[1.23 20 /Name true null 78 40 R (There)]")
	got := DebugString(obj)
	assert.Equal(t, `[ 1.23 20 /Name true <null> (78, 40) "There" ]`, got)
}

func TestDebugStringDictOrder(t *testing.T) {
	obj := parseOne(t, "<< /Type /Page /Parent 3 0 R >>")
	assert.Equal(t, `{ /Type => /Page, /Parent => (3, 0), }`, DebugString(obj))
}

func TestDebugStringIndentNests(t *testing.T) {
	obj := parseOne(t, "<< /Resources << /F1 9 0 R >> >>")
	got := DebugStringIndent(obj)
	require.Contains(t, got, "/Resources => {")
	assert.Contains(t, got, "        /F1 => (9, 0)")
}
