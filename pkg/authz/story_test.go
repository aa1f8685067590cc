package authz

import (
	"testing"

	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

func TestStoryWriteRules(t *testing.T) {
	rules := []struct {
		action string
		rule   func(*models.ProjectMembership) error
	}{
		{"create", CanCreateStory},
		{"update", CanUpdateStory},
		{"remove", CanRemoveStory},
	}

	actors := []struct {
		name    string
		acting  *models.ProjectMembership
		allowed bool
	}{
		{"admin", membership(true, false, false), true},
		{"manager", membership(false, true, false), true},
		{"developer", membership(false, false, true), true},
		{"viewer", membership(false, false, false), false},
		{"non-member", nil, false},
	}

	for _, r := range rules {
		for _, a := range actors {
			t.Run(r.action+"/"+a.name, func(t *testing.T) {
				err := r.rule(a.acting)
				if a.allowed {
					if err != nil {
						t.Fatalf("expected success, got %v", err)
					}
					return
				}
				assertDenied(t, err, "you do not have permission to "+r.action+" stories for this project")
			})
		}
	}
}

func TestCanReadStories(t *testing.T) {
	// A viewer with no elevated flags may read; a non-member may not.
	if err := CanReadStories(membership(false, false, false)); err != nil {
		t.Fatalf("viewer read: %v", err)
	}
	if err := CanReadStories(membership(false, false, true)); err != nil {
		t.Fatalf("developer read: %v", err)
	}
	assertDenied(t, CanReadStories(nil),
		"you do not have permission to read stories for this project")
}
