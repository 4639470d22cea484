package envelope

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/mock/gomock"

	"github.com/djcmanager/djcmanager/internal/activation"
	"github.com/djcmanager/djcmanager/internal/assets"
	"github.com/djcmanager/djcmanager/internal/callbacks"
	"github.com/djcmanager/djcmanager/internal/host"
	"github.com/djcmanager/djcmanager/internal/host/hostmock"
)

type scriptEl struct {
	text  string
	attrs map[string]string
}

func (e *scriptEl) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *scriptEl) SetAttr(name string, value any) {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	if s, ok := value.(string); ok {
		e.attrs[name] = s
	}
}
func (e *scriptEl) Text() string { return e.text }

func buildEnvelopeElement(t *testing.T, raw string) *scriptEl {
	t.Helper()
	return &scriptEl{
		text:  base64.StdEncoding.EncodeToString([]byte(raw)),
		attrs: map[string]string{"data-djc-envelope": ""},
	}
}

func TestIngestor_ScanRegistersAndEnqueuesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := hostmock.NewMockHost(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.EXPECT().Console().Return(logger).AnyTimes()

	raw := `{
		"js_tags_to_fetch": [{"tag": "script", "attrs": {"src": "/s.js"}, "content": ""}],
		"component_js_vars": [{"class_id": "alert", "data_hash": "h1", "json": "{\"x\":1}"}],
		"component_js_calls": [{"class_id": "alert", "instance_id": "i1", "data_hash": "h1"}]
	}`
	el := buildEnvelopeElement(t, raw)

	h.EXPECT().Scan(envelopeSelector).Return([]host.Element{el}).Times(2)
	instanceEl := &scriptEl{attrs: map[string]string{"data-djc-id-i1": ""}}
	h.EXPECT().Scan(gomock.Any()).Return([]host.Element{instanceEl}).AnyTimes()
	// Processing the envelope creates exactly one script element; a second
	// processing would create another even though /s.js is already loaded.
	h.EXPECT().CreateElement(gomock.Any(), gomock.Any(), gomock.Any()).Return(&scriptEl{}).Times(1)
	h.EXPECT().AppendBody(gomock.Any()).AnyTimes()
	loadedCh := make(chan error, 1)
	loadedCh <- nil
	h.EXPECT().FireLoad(gomock.Any()).Return(loadedCh).AnyTimes()

	a := assets.NewRegistry(h)
	cb := callbacks.New(nil)
	q := activation.New(h, cb, activation.Config{StallInterval: time.Hour})
	cb.SetDrainer(q)
	defer q.Close()
	ig := New(h, a, cb, q)

	var seenData cty.Value
	cb.RegisterCallback("alert", func(_ context.Context, data cty.Value, _ callbacks.Context) (any, error) {
		seenData = data
		return nil, nil
	})

	require.NoError(t, ig.Scan(context.Background()))
	// A second Scan observing the same element must not reprocess it.
	require.NoError(t, ig.Scan(context.Background()))

	require.Eventually(t, func() bool {
		return seenData != cty.NilVal
	}, 2*time.Second, 10*time.Millisecond, "activation callback never ran")

	obj := seenData.AsValueMap()
	assert.True(t, obj["x"].RawEquals(cty.NumberIntVal(1)))
}
