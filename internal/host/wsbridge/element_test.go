package wsbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoteElement_NilAttrsBecomesEmptyMap(t *testing.T) {
	el := newRemoteElement(nil, "id-1", nil, "")
	_, ok := el.Attr("missing")
	assert.False(t, ok)
}

func TestFromWire_CopiesFields(t *testing.T) {
	el := fromWire(nil, wireElement{ID: "id-1", Tag: "div", Attrs: map[string]string{"class": "x"}, Text: "hi"})

	assert.Equal(t, "id-1", el.id)
	assert.Equal(t, "hi", el.Text())
	v, ok := el.Attr("class")
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestRemoteElement_AttrIsCaseInsensitive(t *testing.T) {
	el := newRemoteElement(nil, "id-1", map[string]string{"data-foo": "bar"}, "")

	v, ok := el.Attr("Data-Foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
}

func TestRemoteElement_SetLocalBoolToggles(t *testing.T) {
	el := newRemoteElement(nil, "id-1", nil, "")

	el.setLocal("defer", true)
	_, ok := el.Attr("defer")
	assert.True(t, ok)

	el.setLocal("defer", false)
	_, ok = el.Attr("defer")
	assert.False(t, ok)
}

func TestRemoteElement_SetLocalNonStringMarshals(t *testing.T) {
	el := newRemoteElement(nil, "id-1", nil, "")

	el.setLocal("data-count", 3)
	v, ok := el.Attr("data-count")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestJSONString_StringPassesThroughUnquoted(t *testing.T) {
	assert.Equal(t, "hello", jsonString("hello"))
}

func TestJSONString_NonStringMarshals(t *testing.T) {
	assert.Equal(t, "42", jsonString(42))
	assert.Equal(t, "true", jsonString(true))
}

func TestDecodeArg_RoundTripsViaJSON(t *testing.T) {
	var w wireElement
	raw := map[string]any{"id": "x", "tag": "div", "attrs": map[string]any{"a": "b"}, "text": "t"}

	require.NoError(t, decodeArg(raw, &w))
	assert.Equal(t, "x", w.ID)
	assert.Equal(t, "div", w.Tag)
	assert.Equal(t, "t", w.Text)
	assert.Equal(t, "b", w.Attrs["a"])
}

func TestBridge_NextIDIsMonotonicAndUnique(t *testing.T) {
	b := &Bridge{}

	first := b.nextID()
	second := b.nextID()

	assert.NotEqual(t, first, second)
	assert.Equal(t, "djc-1", first)
	assert.Equal(t, "djc-2", second)
}
