// Hand-written in the shape mockgen generates, combining the
// github.com/hoover-rt/hoover/transport interfaces BitmapTransport and
// VertexTransport into one mock.

package driver_test

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	transport "github.com/hoover-rt/hoover/transport"
)

// MockTransport mocks driver.Transport (BitmapTransport + VertexTransport)
// for unit tests that want to assert on individual calls the driver makes
// without standing up a full transport.InMemory cluster.
type MockTransport struct {
	ctrl     *gomock.Controller
	recorder *MockTransportMockRecorder
}

// MockTransportMockRecorder is the mock recorder for MockTransport.
type MockTransportMockRecorder struct {
	mock *MockTransport
}

// NewMockTransport creates a new mock instance.
func NewMockTransport(ctrl *gomock.Controller) *MockTransport {
	mock := &MockTransport{ctrl: ctrl}
	mock.recorder = &MockTransportMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTransport) EXPECT() *MockTransportMockRecorder {
	return m.recorder
}

func (m *MockTransport) AtomicOr(ctx context.Context, pe int, region string, offset int, mask uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AtomicOr", ctx, pe, region, offset, mask)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) AtomicOr(ctx, pe, region, offset, mask interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AtomicOr", reflect.TypeOf((*MockTransport)(nil).AtomicOr), ctx, pe, region, offset, mask)
}

func (m *MockTransport) AtomicAnd(ctx context.Context, pe int, region string, offset int, mask uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AtomicAnd", ctx, pe, region, offset, mask)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) AtomicAnd(ctx, pe, region, offset, mask interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AtomicAnd", reflect.TypeOf((*MockTransport)(nil).AtomicAnd), ctx, pe, region, offset, mask)
}

func (m *MockTransport) AtomicInc(ctx context.Context, pe int, region string, offset int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AtomicInc", ctx, pe, region, offset)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) AtomicInc(ctx, pe, region, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AtomicInc", reflect.TypeOf((*MockTransport)(nil).AtomicInc), ctx, pe, region, offset)
}

func (m *MockTransport) AtomicFetch(ctx context.Context, pe int, region string, offset int) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AtomicFetch", ctx, pe, region, offset)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTransportMockRecorder) AtomicFetch(ctx, pe, region, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AtomicFetch", reflect.TypeOf((*MockTransport)(nil).AtomicFetch), ctx, pe, region, offset)
}

func (m *MockTransport) Fence(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Fence", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) Fence(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Fence", reflect.TypeOf((*MockTransport)(nil).Fence), ctx)
}

func (m *MockTransport) GetBulk(ctx context.Context, pe int, region string, offset, count int) ([]uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBulk", ctx, pe, region, offset, count)
	ret0, _ := ret[0].([]uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTransportMockRecorder) GetBulk(ctx, pe, region, offset, count interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBulk", reflect.TypeOf((*MockTransport)(nil).GetBulk), ctx, pe, region, offset, count)
}

func (m *MockTransport) MyPE() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MyPE")
	ret0, _ := ret[0].(int)
	return ret0
}

func (mr *MockTransportMockRecorder) MyPE() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MyPE", reflect.TypeOf((*MockTransport)(nil).MyPE))
}

func (m *MockTransport) NPEs() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NPEs")
	ret0, _ := ret[0].(int)
	return ret0
}

func (mr *MockTransportMockRecorder) NPEs() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NPEs", reflect.TypeOf((*MockTransport)(nil).NPEs))
}

func (m *MockTransport) BarrierAll(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BarrierAll", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) BarrierAll(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BarrierAll", reflect.TypeOf((*MockTransport)(nil).BarrierAll), ctx)
}

func (m *MockTransport) PublishPartitionVertices(ctx context.Context, p int32, verts []transport.Vertex) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PublishPartitionVertices", ctx, p, verts)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) PublishPartitionVertices(ctx, p, verts interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PublishPartitionVertices", reflect.TypeOf((*MockTransport)(nil).PublishPartitionVertices), ctx, p, verts)
}

func (m *MockTransport) PartitionVertices(ctx context.Context, pe int, p int32) ([]transport.Vertex, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PartitionVertices", ctx, pe, p)
	ret0, _ := ret[0].([]transport.Vertex)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTransportMockRecorder) PartitionVertices(ctx, pe, p interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PartitionVertices", reflect.TypeOf((*MockTransport)(nil).PartitionVertices), ctx, pe, p)
}

func (m *MockTransport) SendMessage(ctx context.Context, pe int, vertexID uint64, payload []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendMessage", ctx, pe, vertexID, payload)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTransportMockRecorder) SendMessage(ctx, pe, vertexID, payload interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMessage", reflect.TypeOf((*MockTransport)(nil).SendMessage), ctx, pe, vertexID, payload)
}

func (m *MockTransport) PollMessages(ctx context.Context) ([]transport.InboundMessage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PollMessages", ctx)
	ret0, _ := ret[0].([]transport.InboundMessage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTransportMockRecorder) PollMessages(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PollMessages", reflect.TypeOf((*MockTransport)(nil).PollMessages), ctx)
}
