package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	assert.Equal(t, ParseName("a"+string(os.PathSeparator)+"b"), "b")
	assert.Equal(t, ParseName("a"+string(os.PathSeparator)+"b.tsv"), "b")
}

func TestAssemblePath(t *testing.T) {
	sep := string(os.PathSeparator)
	assert.Equal(t, "a"+sep+"b"+sep+"c", AssemblePath("a", "b", "c"))
	assert.Equal(t, "a", AssemblePath("a"))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 2, Min(2, 2))
}
