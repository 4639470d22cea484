package activation

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/mock/gomock"

	"github.com/djcmanager/djcmanager/internal/callbacks"
	"github.com/djcmanager/djcmanager/internal/future"
	"github.com/djcmanager/djcmanager/internal/host"
	"github.com/djcmanager/djcmanager/internal/host/hostmock"
)

type fakeElement struct {
	attrs map[string]string
}

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *fakeElement) SetAttr(name string, value any) {}
func (e *fakeElement) Text() string                   { return "" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestQueue(t *testing.T) (*Queue, *hostmock.MockHost, *callbacks.Registry) {
	ctrl := gomock.NewController(t)
	h := hostmock.NewMockHost(ctrl)
	h.EXPECT().Console().Return(discardLogger()).AnyTimes()

	cb := callbacks.New(nil)
	q := New(h, cb, Config{StallInterval: time.Hour})
	cb.SetDrainer(q)
	t.Cleanup(q.Close)
	return q, h, cb
}

func waitObs(t *testing.T, obs *future.Future[any]) (any, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return obs.Wait(ctx)
}

func TestQueue_ExecutesInFIFOOrder(t *testing.T) {
	q, h, cb := newTestQueue(t)

	var order []string
	el := &fakeElement{attrs: map[string]string{instanceAttr("i1"): ""}}
	h.EXPECT().Scan(gomock.Any()).Return([]host.Element{el}).AnyTimes()

	cb.RegisterCallback("classA", func(_ context.Context, _ cty.Value, c callbacks.Context) (any, error) {
		order = append(order, c.ID)
		return nil, nil
	})

	obs1 := q.Enqueue(context.Background(), Identity{ClassID: "classA", InstanceID: "i1"}, nil)
	obs2 := q.Enqueue(context.Background(), Identity{ClassID: "classA", InstanceID: "i2"}, nil)
	obs3 := q.Enqueue(context.Background(), Identity{ClassID: "classA", InstanceID: "i3"}, nil)

	_, err1 := waitObs(t, obs1)
	_, err2 := waitObs(t, obs2)
	_, err3 := waitObs(t, obs3)

	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NoError(t, err3)
	assert.Equal(t, []string{"i1", "i2", "i3"}, order)
}

func TestQueue_BlocksUntilCallbackRegistered(t *testing.T) {
	q, h, cb := newTestQueue(t)

	el := &fakeElement{attrs: map[string]string{instanceAttr("i1"): ""}}
	h.EXPECT().Scan(gomock.Any()).Return([]host.Element{el}).AnyTimes()

	obs := q.Enqueue(context.Background(), Identity{ClassID: "classB", InstanceID: "i1"}, nil)

	select {
	case <-obs.Done():
		t.Fatal("activation resolved before any callback was registered")
	case <-time.After(50 * time.Millisecond):
	}

	called := false
	cb.RegisterCallback("classB", func(_ context.Context, _ cty.Value, _ callbacks.Context) (any, error) {
		called = true
		return nil, nil
	})

	_, err := waitObs(t, obs)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestQueue_WaitPromiseFailureFlushesTail(t *testing.T) {
	q, h, cb := newTestQueue(t)

	el := &fakeElement{attrs: map[string]string{}}
	h.EXPECT().Scan(gomock.Any()).Return([]host.Element{el}).AnyTimes()

	cb.RegisterCallback("classC", func(_ context.Context, _ cty.Value, _ callbacks.Context) (any, error) {
		return nil, nil
	})

	failing := future.New[struct{}]()
	obs1 := q.Enqueue(context.Background(), Identity{ClassID: "classC", InstanceID: "i1"}, failing)
	obs2 := q.Enqueue(context.Background(), Identity{ClassID: "classC", InstanceID: "i2"}, nil)

	boom := assert.AnError
	failing.Reject(boom)

	_, err1 := waitObs(t, obs1)
	_, err2 := waitObs(t, obs2)

	require.Error(t, err1)
	require.Error(t, err2)
	var fatal *FatalError
	require.ErrorAs(t, err1, &fatal)
	assert.ErrorIs(t, fatal, boom)
}

func TestQueue_ReadyWhenDataFactoryRegisteredAfterEnqueue(t *testing.T) {
	q, h, cb := newTestQueue(t)

	el := &fakeElement{attrs: map[string]string{instanceAttr("i1"): ""}}
	h.EXPECT().Scan(gomock.Any()).Return([]host.Element{el}).AnyTimes()

	cb.RegisterCallback("classD", func(_ context.Context, data cty.Value, _ callbacks.Context) (any, error) {
		return data.AsString(), nil
	})

	hash := "hash1"
	obs := q.Enqueue(context.Background(), Identity{ClassID: "classD", InstanceID: "i1", DataHash: &hash}, nil)

	select {
	case <-obs.Done():
		t.Fatal("activation resolved before its data factory was registered")
	case <-time.After(50 * time.Millisecond):
	}

	cb.RegisterDataFactory("classD", "hash1", func() (cty.Value, error) {
		return cty.StringVal("fresh"), nil
	})

	v, err := waitObs(t, obs)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestQueue_StallReportIdentifiesOldestBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := hostmock.NewMockHost(ctrl)

	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewTextHandler(&syncWriter{&mu, &buf}, nil))
	h.EXPECT().Console().Return(logger).AnyTimes()

	el := &fakeElement{attrs: map[string]string{instanceAttr("i1"): ""}}
	h.EXPECT().Scan(gomock.Any()).Return([]host.Element{el}).AnyTimes()

	cb := callbacks.New(nil)
	q := New(h, cb, Config{StallInterval: 20 * time.Millisecond})
	cb.SetDrainer(q)
	t.Cleanup(q.Close)

	obs := q.Enqueue(context.Background(), Identity{ClassID: "classStall", InstanceID: "i1"}, nil)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return strings.Contains(buf.String(), "activation queue stalled")
	}, time.Second, 5*time.Millisecond, "expected a stall diagnostic to be logged")

	mu.Lock()
	logged := buf.String()
	mu.Unlock()
	assert.Contains(t, logged, "blocked_count=1")
	assert.Contains(t, logged, "classStall")
	assert.Contains(t, logged, "i1")

	mu.Lock()
	buf.Reset()
	mu.Unlock()

	cb.RegisterCallback("classStall", func(_ context.Context, _ cty.Value, _ callbacks.Context) (any, error) {
		return nil, nil
	})

	_, err := waitObs(t, obs)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	logged = buf.String()
	mu.Unlock()
	assert.NotContains(t, logged, "activation queue stalled",
		"no further stall diagnostics should fire once the queue is no longer blocked")
}

type syncWriter struct {
	mu *sync.Mutex
	b  *bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

func TestQueue_NoElementsIsRejected(t *testing.T) {
	q, h, cb := newTestQueue(t)

	h.EXPECT().Scan(gomock.Any()).Return(nil).AnyTimes()
	cb.RegisterCallback("classE", func(_ context.Context, _ cty.Value, _ callbacks.Context) (any, error) {
		return nil, nil
	})

	obs := q.Enqueue(context.Background(), Identity{ClassID: "classE", InstanceID: "missing"}, nil)
	_, err := waitObs(t, obs)
	require.Error(t, err)
	var want *NoElementsError
	assert.ErrorAs(t, err, &want)
}
