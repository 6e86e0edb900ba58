package store

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "plain ascii", sanitizeUTF8("plain ascii"))
	assert.Equal(t, "témozolomide 胶质母细胞瘤", sanitizeUTF8("témozolomide 胶质母细胞瘤"))

	// Stray bytes from broken PDF extraction get dropped, valid runes stay.
	broken := "glio" + string([]byte{0xff, 0xfe}) + "blastoma"
	got := sanitizeUTF8(broken)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "glioblastoma", got)

	// A legitimate replacement character survives.
	assert.Equal(t, "a�b", sanitizeUTF8("a�b"))
}
