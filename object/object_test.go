package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcouch/storage-noodle/object"
)

func TestObject(t *testing.T) {
	o := object.New([]byte("Hello, World!"))
	assert.Equal(t, 13, o.Len())
	assert.True(t, o.Equal(object.Object{Data: []byte("Hello, World!")}))
	assert.False(t, o.Equal(object.New([]byte("chocolate"))))
	assert.True(t, object.Object{}.Equal(object.New([]byte{})))
	assert.Equal(t, "object(13 bytes)", o.String())
}

func TestEncodeDecode(t *testing.T) {
	type recipe struct {
		Name        string
		Ingredients []string
		Minutes     int
	}
	want := recipe{Name: "shortbread", Ingredients: []string{"flour", "butter", "sugar"}, Minutes: 25}

	o, err := object.Encode(want)
	require.NoError(t, err)
	assert.NotZero(t, o.Len())

	got, err := object.Decode[recipe](o)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := object.Decode[map[string]int](object.New([]byte{0xc1}))
	assert.ErrorContains(t, err, "object: decode")
}
