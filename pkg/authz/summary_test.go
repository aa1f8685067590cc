package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		acting *models.ProjectMembership
		want   Summary
	}{
		{
			name:   "admin",
			acting: membership(true, false, false),
			want: Summary{
				CanUpdateProject:         true,
				CanRemoveProject:         true,
				CanCreateMembership:      true,
				CanCreateAdminMembership: true,
				CanUpdateMembership:      true,
				CanUpdateAdminMembership: true,
				CanRemoveMembership:      true,
				CanRemoveAdminMembership: true,
				CanCreateStatus:          true,
				CanUpdateStatus:          true,
				CanRemoveStatus:          true,
				CanCreateStory:           true,
				CanUpdateStory:           true,
				CanRemoveStory:           true,
				CanReadStories:           true,
			},
		},
		{
			name:   "manager",
			acting: membership(false, true, false),
			want: Summary{
				CanUpdateProject:    true,
				CanCreateMembership: true,
				CanUpdateMembership: true,
				CanRemoveMembership: true,
				CanCreateStatus:     true,
				CanUpdateStatus:     true,
				CanRemoveStatus:     true,
				CanCreateStory:      true,
				CanUpdateStory:      true,
				CanRemoveStory:      true,
				CanReadStories:      true,
			},
		},
		{
			name:   "developer",
			acting: membership(false, false, true),
			want: Summary{
				CanCreateStory: true,
				CanUpdateStory: true,
				CanRemoveStory: true,
				CanReadStories: true,
			},
		},
		{
			name:   "viewer",
			acting: membership(false, false, false),
			want: Summary{
				CanReadStories: true,
			},
		},
		{
			name:   "non-member",
			acting: nil,
			want:   Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.acting))
		})
	}
}

// A manager can update non-admin memberships but not cross the admin
// boundary: the two update flags must disagree.
func TestSummarize_ManagerUpdateTiersDiffer(t *testing.T) {
	s := Summarize(membership(false, true, false))
	assert.True(t, s.CanUpdateMembership)
	assert.False(t, s.CanUpdateAdminMembership)
}
