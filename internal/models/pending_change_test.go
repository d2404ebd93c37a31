package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitChangeRequest_Validate(t *testing.T) {
	resourceID := 3

	tests := []struct {
		name    string
		req     SubmitChangeRequest
		wantErr bool
	}{
		{
			name: "valid create",
			req: SubmitChangeRequest{
				Action:       ChangeActionCreate,
				ResourceType: "product",
				ChangeData:   json.RawMessage(`{"name":"x"}`),
			},
		},
		{
			name: "valid delete without change data",
			req: SubmitChangeRequest{
				Action:       ChangeActionDelete,
				ResourceType: "product",
				ResourceID:   &resourceID,
			},
		},
		{
			name: "unknown action",
			req: SubmitChangeRequest{
				Action:       "merge",
				ResourceType: "product",
			},
			wantErr: true,
		},
		{
			name: "missing resource type",
			req: SubmitChangeRequest{
				Action:     ChangeActionCreate,
				ChangeData: json.RawMessage(`{}`),
			},
			wantErr: true,
		},
		{
			name: "update without resource id",
			req: SubmitChangeRequest{
				Action:       ChangeActionUpdate,
				ResourceType: "product",
				ChangeData:   json.RawMessage(`{}`),
			},
			wantErr: true,
		},
		{
			name: "update without change data",
			req: SubmitChangeRequest{
				Action:       ChangeActionUpdate,
				ResourceType: "product",
				ResourceID:   &resourceID,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ReviewRequest{Decision: ChangeStatusApproved}).Validate())
	assert.NoError(t, (&ReviewRequest{Decision: ChangeStatusRejected}).Validate())
	assert.Error(t, (&ReviewRequest{Decision: ChangeStatusPending}).Validate())
	assert.Error(t, (&ReviewRequest{Decision: "maybe"}).Validate())
}

func TestPendingChange_IsTerminal(t *testing.T) {
	assert.False(t, (&PendingChange{Status: ChangeStatusPending}).IsTerminal())
	assert.True(t, (&PendingChange{Status: ChangeStatusApproved}).IsTerminal())
	assert.True(t, (&PendingChange{Status: ChangeStatusRejected}).IsTerminal())
}
