package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_ValidOnlyScriptAndStylesheet(t *testing.T) {
	assert.True(t, KindScript.valid())
	assert.True(t, KindStylesheet.valid())
	assert.False(t, Kind(2).valid())
}

func TestKind_TagAndURLAttr(t *testing.T) {
	assert.Equal(t, "script", KindScript.tag())
	assert.Equal(t, "src", KindScript.urlAttr())
	assert.Equal(t, "link", KindStylesheet.tag())
	assert.Equal(t, "href", KindStylesheet.urlAttr())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "script", KindScript.String())
	assert.Equal(t, "stylesheet", KindStylesheet.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
