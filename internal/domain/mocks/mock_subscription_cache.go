package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/remsins/webhook/internal/domain"
)

// MockSubscriptionCache is a mock of SubscriptionCache interface
type MockSubscriptionCache struct {
	ctrl     *gomock.Controller
	recorder *MockSubscriptionCacheMockRecorder
}

// MockSubscriptionCacheMockRecorder is the mock recorder for MockSubscriptionCache
type MockSubscriptionCacheMockRecorder struct {
	mock *MockSubscriptionCache
}

// NewMockSubscriptionCache creates a new mock instance
func NewMockSubscriptionCache(ctrl *gomock.Controller) *MockSubscriptionCache {
	mock := &MockSubscriptionCache{ctrl: ctrl}
	mock.recorder = &MockSubscriptionCacheMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSubscriptionCache) EXPECT() *MockSubscriptionCacheMockRecorder {
	return m.recorder
}

// Put mocks base method
func (m *MockSubscriptionCache) Put(ctx context.Context, sub *domain.Subscription) {
	m.ctrl.Call(m, "Put", ctx, sub)
}

// Put indicates an expected call of Put
func (mr *MockSubscriptionCacheMockRecorder) Put(ctx, sub interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Put", reflect.TypeOf((*MockSubscriptionCache)(nil).Put), ctx, sub)
}

// Get mocks base method
func (m *MockSubscriptionCache) Get(ctx context.Context, id string) (*domain.Subscription, bool) {
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*domain.Subscription)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockSubscriptionCacheMockRecorder) Get(ctx, id interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockSubscriptionCache)(nil).Get), ctx, id)
}

// Invalidate mocks base method
func (m *MockSubscriptionCache) Invalidate(ctx context.Context, id string) {
	m.ctrl.Call(m, "Invalidate", ctx, id)
}

// Invalidate indicates an expected call of Invalidate
func (mr *MockSubscriptionCacheMockRecorder) Invalidate(ctx, id interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Invalidate", reflect.TypeOf((*MockSubscriptionCache)(nil).Invalidate), ctx, id)
}

// GetOrLoad mocks base method
func (m *MockSubscriptionCache) GetOrLoad(ctx context.Context, id string) (*domain.Subscription, error) {
	ret := m.ctrl.Call(m, "GetOrLoad", ctx, id)
	ret0, _ := ret[0].(*domain.Subscription)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrLoad indicates an expected call of GetOrLoad
func (mr *MockSubscriptionCacheMockRecorder) GetOrLoad(ctx, id interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrLoad", reflect.TypeOf((*MockSubscriptionCache)(nil).GetOrLoad), ctx, id)
}
