package hostmock

import (
	"log/slog"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/djcmanager/djcmanager/internal/host"
)

// MockHost is a mock of the host.Host interface.
type MockHost struct {
	ctrl     *gomock.Controller
	recorder *MockHostMockRecorder
}

// MockHostMockRecorder is the mock recorder for MockHost.
type MockHostMockRecorder struct {
	mock *MockHost
}

// NewMockHost returns a new mock bound to ctrl.
func NewMockHost(ctrl *gomock.Controller) *MockHost {
	mock := &MockHost{ctrl: ctrl}
	mock.recorder = &MockHostMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockHost) EXPECT() *MockHostMockRecorder {
	return m.recorder
}

// Scan mocks base method.
func (m *MockHost) Scan(selector host.Selector) []host.Element {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Scan", selector)
	ret0, _ := ret[0].([]host.Element)
	return ret0
}

// Scan indicates an expected call of Scan.
func (mr *MockHostMockRecorder) Scan(selector any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Scan", reflect.TypeOf((*MockHost)(nil).Scan), selector)
}

// Mutations mocks base method.
func (m *MockHost) Mutations() <-chan host.Element {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mutations")
	ret0, _ := ret[0].(<-chan host.Element)
	return ret0
}

// Mutations indicates an expected call of Mutations.
func (mr *MockHostMockRecorder) Mutations() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mutations", reflect.TypeOf((*MockHost)(nil).Mutations))
}

// CreateElement mocks base method.
func (m *MockHost) CreateElement(tag string, attrs map[string]any, content string) host.Element {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateElement", tag, attrs, content)
	ret0, _ := ret[0].(host.Element)
	return ret0
}

// CreateElement indicates an expected call of CreateElement.
func (mr *MockHostMockRecorder) CreateElement(tag, attrs, content any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateElement", reflect.TypeOf((*MockHost)(nil).CreateElement), tag, attrs, content)
}

// AppendHead mocks base method.
func (m *MockHost) AppendHead(el host.Element) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AppendHead", el)
}

// AppendHead indicates an expected call of AppendHead.
func (mr *MockHostMockRecorder) AppendHead(el any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendHead", reflect.TypeOf((*MockHost)(nil).AppendHead), el)
}

// AppendBody mocks base method.
func (m *MockHost) AppendBody(el host.Element) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AppendBody", el)
}

// AppendBody indicates an expected call of AppendBody.
func (mr *MockHostMockRecorder) AppendBody(el any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendBody", reflect.TypeOf((*MockHost)(nil).AppendBody), el)
}

// FireLoad mocks base method.
func (m *MockHost) FireLoad(el host.Element) <-chan error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FireLoad", el)
	ret0, _ := ret[0].(<-chan error)
	return ret0
}

// FireLoad indicates an expected call of FireLoad.
func (mr *MockHostMockRecorder) FireLoad(el any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FireLoad", reflect.TypeOf((*MockHost)(nil).FireLoad), el)
}

// Console mocks base method.
func (m *MockHost) Console() *slog.Logger {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Console")
	ret0, _ := ret[0].(*slog.Logger)
	return ret0
}

// Console indicates an expected call of Console.
func (mr *MockHostMockRecorder) Console() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Console", reflect.TypeOf((*MockHost)(nil).Console))
}
