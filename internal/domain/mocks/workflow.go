// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pyscaff/pyscaff/internal/domain"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a new MockWorkflow and registers the expectation
// assertions with the test's cleanup hook.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	m := &MockWorkflow{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Generate mocks domain.Workflow.Generate.
func (m *MockWorkflow) Generate(ctx context.Context, args domain.GenerateArgs) error {
	return m.Called(ctx, args).Error(0)
}

// Estimate mocks domain.Workflow.Estimate.
func (m *MockWorkflow) Estimate(ctx context.Context, args domain.EstimateArgs) error {
	return m.Called(ctx, args).Error(0)
}

// View mocks domain.Workflow.View.
func (m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return m.Called(ctx, args).Error(0)
}
