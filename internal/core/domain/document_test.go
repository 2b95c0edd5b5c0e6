package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.True(t, StatusUnknown.Valid())
	assert.False(t, Status("approved").Valid())
	assert.False(t, Status("").Valid())
}

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategoryRequirement.Valid())
	assert.True(t, CategoryResponse.Valid())
	assert.False(t, Category("rfp").Valid())
	assert.False(t, Category("").Valid())
}

func TestProjectMapping_Complete(t *testing.T) {
	tests := []struct {
		name     string
		mapping  ProjectMapping
		complete bool
	}{
		{
			name: "both sides present",
			mapping: ProjectMapping{
				RequirementDocID: "req-1",
				ResponseDocID:    "resp-1",
				Status:           StatusAccepted,
			},
			complete: true,
		},
		{
			name:     "requirement only",
			mapping:  ProjectMapping{RequirementDocID: "req-1"},
			complete: false,
		},
		{
			name:     "response only",
			mapping:  ProjectMapping{ResponseDocID: "resp-1"},
			complete: false,
		},
		{
			name:     "empty",
			mapping:  ProjectMapping{},
			complete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, tt.mapping.Complete())
		})
	}
}

func TestRetrieveOptions_Filtered(t *testing.T) {
	assert.False(t, RetrieveOptions{K: 5}.Filtered())
	assert.True(t, RetrieveOptions{K: 5, Status: StatusRejected}.Filtered())
	assert.True(t, RetrieveOptions{K: 5, Category: CategoryRequirement}.Filtered())
	assert.True(t, RetrieveOptions{Status: StatusAccepted, Category: CategoryResponse}.Filtered())
}
