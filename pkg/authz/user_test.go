package authz

import (
	"testing"
)

func TestCanActOnUser(t *testing.T) {
	tests := []struct {
		name    string
		acting  string
		target  string
		action  Action
		wantErr string
	}{
		{"update self exact", "alice", "alice", ActionUpdate, ""},
		{"update self case-insensitive", "Alice", "alice", ActionUpdate, ""},
		{"delete self case-insensitive", "BOB", "bob", ActionDelete, ""},
		{"update other", "Alice", "bob", ActionUpdate,
			"you do not have permission to perform this action"},
		{"delete other", "alice", "Bob", ActionDelete,
			"you do not have permission to perform this action"},
		// Create is unauthenticated registration; no gate applies.
		{"create", "alice", "bob", ActionCreate, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanActOnUser(tt.acting, tt.target, tt.action)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			assertDenied(t, err, tt.wantErr)
		})
	}
}
