package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lesson-server/internal/rasterizer"
)

// MockRasterizer is a mock type for the rasterizer.Rasterizer type
type MockRasterizer struct {
	mock.Mock
}

// Render provides a mock function with given fields: ctx, html
func (_m *MockRasterizer) Render(ctx context.Context, html string) ([]byte, error) {
	ret := _m.Called(ctx, html)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(context.Context, string) []byte); ok {
		r0 = rf(ctx, html)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, html)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Close provides a mock function
func (_m *MockRasterizer) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

// NewMockRasterizer creates a new instance of MockRasterizer. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockRasterizer(t interface {
	mock.TestingT
	Helper()
}) *MockRasterizer {
	m := &MockRasterizer{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ rasterizer.Rasterizer = (*MockRasterizer)(nil)
