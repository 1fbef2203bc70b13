package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/remsins/webhook/internal/domain"
)

// MockDeliveryQueue is a mock of DeliveryQueue interface
type MockDeliveryQueue struct {
	ctrl     *gomock.Controller
	recorder *MockDeliveryQueueMockRecorder
}

// MockDeliveryQueueMockRecorder is the mock recorder for MockDeliveryQueue
type MockDeliveryQueueMockRecorder struct {
	mock *MockDeliveryQueue
}

// NewMockDeliveryQueue creates a new mock instance
func NewMockDeliveryQueue(ctrl *gomock.Controller) *MockDeliveryQueue {
	mock := &MockDeliveryQueue{ctrl: ctrl}
	mock.recorder = &MockDeliveryQueueMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockDeliveryQueue) EXPECT() *MockDeliveryQueueMockRecorder {
	return m.recorder
}

// Enqueue mocks base method
func (m *MockDeliveryQueue) Enqueue(ctx context.Context, job *domain.DeliveryJob) error {
	ret := m.ctrl.Call(m, "Enqueue", ctx, job)
	ret0, _ := ret[0].(error)
	return ret0
}

// Enqueue indicates an expected call of Enqueue
func (mr *MockDeliveryQueueMockRecorder) Enqueue(ctx, job interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enqueue", reflect.TypeOf((*MockDeliveryQueue)(nil).Enqueue), ctx, job)
}

// EnqueueIn mocks base method
func (m *MockDeliveryQueue) EnqueueIn(ctx context.Context, delay time.Duration, job *domain.DeliveryJob) error {
	ret := m.ctrl.Call(m, "EnqueueIn", ctx, delay, job)
	ret0, _ := ret[0].(error)
	return ret0
}

// EnqueueIn indicates an expected call of EnqueueIn
func (mr *MockDeliveryQueueMockRecorder) EnqueueIn(ctx, delay, job interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnqueueIn", reflect.TypeOf((*MockDeliveryQueue)(nil).EnqueueIn), ctx, delay, job)
}

// Dequeue mocks base method
func (m *MockDeliveryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.QueuedJob, error) {
	ret := m.ctrl.Call(m, "Dequeue", ctx, timeout)
	ret0, _ := ret[0].(*domain.QueuedJob)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Dequeue indicates an expected call of Dequeue
func (mr *MockDeliveryQueueMockRecorder) Dequeue(ctx, timeout interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dequeue", reflect.TypeOf((*MockDeliveryQueue)(nil).Dequeue), ctx, timeout)
}

// Ack mocks base method
func (m *MockDeliveryQueue) Ack(ctx context.Context, qj *domain.QueuedJob) error {
	ret := m.ctrl.Call(m, "Ack", ctx, qj)
	ret0, _ := ret[0].(error)
	return ret0
}

// Ack indicates an expected call of Ack
func (mr *MockDeliveryQueueMockRecorder) Ack(ctx, qj interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Ack", reflect.TypeOf((*MockDeliveryQueue)(nil).Ack), ctx, qj)
}

// CountReady mocks base method
func (m *MockDeliveryQueue) CountReady(ctx context.Context) (int64, error) {
	ret := m.ctrl.Call(m, "CountReady", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountReady indicates an expected call of CountReady
func (mr *MockDeliveryQueueMockRecorder) CountReady(ctx interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountReady", reflect.TypeOf((*MockDeliveryQueue)(nil).CountReady), ctx)
}

// RequeueOrphans mocks base method
func (m *MockDeliveryQueue) RequeueOrphans(ctx context.Context) (int64, error) {
	ret := m.ctrl.Call(m, "RequeueOrphans", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RequeueOrphans indicates an expected call of RequeueOrphans
func (mr *MockDeliveryQueueMockRecorder) RequeueOrphans(ctx interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RequeueOrphans", reflect.TypeOf((*MockDeliveryQueue)(nil).RequeueOrphans), ctx)
}
