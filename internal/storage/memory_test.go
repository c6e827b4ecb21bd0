package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStorage_RoundTrip(t *testing.T) {
	mem := NewMemoryStorage()

	assert.NoError(t, mem.Store("formats-snapshot-1.json", []byte("one")))
	assert.NoError(t, mem.Store("formats-snapshot-2.json", []byte("two")))
	assert.NoError(t, mem.Store("analyses-1.json", []byte("other")))

	data, err := mem.Retrieve("formats-snapshot-2.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte("two"), data)

	names, err := mem.List("formats-snapshot-")
	assert.NoError(t, err)
	assert.Equal(t, []string{"formats-snapshot-1.json", "formats-snapshot-2.json"}, names)

	assert.NoError(t, mem.Delete("formats-snapshot-1.json"))
	assert.Error(t, mem.Delete("formats-snapshot-1.json"))

	_, err = mem.Retrieve("missing.json")
	assert.Error(t, err)
}

func TestMemoryStorage_CopiesData(t *testing.T) {
	mem := NewMemoryStorage()

	original := []byte("immutable")
	assert.NoError(t, mem.Store("blob", original))
	original[0] = 'X'

	data, err := mem.Retrieve("blob")
	assert.NoError(t, err)
	assert.Equal(t, []byte("immutable"), data)
}
