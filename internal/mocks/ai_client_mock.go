package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lesson-server/internal/ai"
	"lesson-server/internal/model"
)

// MockAIClient is a mock type for the ai.Client type
type MockAIClient struct {
	mock.Mock
}

// GenerateLesson provides a mock function with given fields: ctx, topic, language
func (_m *MockAIClient) GenerateLesson(ctx context.Context, topic string, language model.Language) (*model.LessonDocument, error) {
	ret := _m.Called(ctx, topic, language)

	var r0 *model.LessonDocument
	if rf, ok := ret.Get(0).(func(context.Context, string, model.Language) *model.LessonDocument); ok {
		r0 = rf(ctx, topic, language)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.LessonDocument)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, model.Language) error); ok {
		r1 = rf(ctx, topic, language)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GenerateCheatSheet provides a mock function with given fields: ctx, topic
func (_m *MockAIClient) GenerateCheatSheet(ctx context.Context, topic string) (*model.CheatSheetDocument, error) {
	ret := _m.Called(ctx, topic)

	var r0 *model.CheatSheetDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) *model.CheatSheetDocument); ok {
		r0 = rf(ctx, topic)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.CheatSheetDocument)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, topic)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GenerateSentenceAnalysis provides a mock function with given fields: ctx, sentence
func (_m *MockAIClient) GenerateSentenceAnalysis(ctx context.Context, sentence string) (*model.SentenceAnalysisDocument, error) {
	ret := _m.Called(ctx, sentence)

	var r0 *model.SentenceAnalysisDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) *model.SentenceAnalysisDocument); ok {
		r0 = rf(ctx, sentence)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.SentenceAnalysisDocument)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, sentence)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockAIClient(t interface {
	mock.TestingT
	Helper()
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ ai.Client = (*MockAIClient)(nil)
