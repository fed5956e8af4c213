package rbac_test

import (
	"sync"
	"testing"

	"go-workforce/internal/rbac"

	"github.com/stretchr/testify/assert"
)

// Satu snapshot dipakai bersama oleh banyak request; pemakaian konkuren
// pertama kali tidak boleh balapan membangun index.
func TestAccess_ConcurrentFirstUse(t *testing.T) {
	access := &rbac.Access{
		UserID: "u-1",
		Roles: []rbac.ResolvedRole{
			{Kind: rbac.RoleKindSystem, Label: "hr"},
		},
		Permissions: []rbac.PermissionPair{
			{Module: "users", Action: "view"},
			{Module: "employees", Action: "update"},
		},
	}

	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = access.HasPermission("users", "view") &&
				access.HasRole("hr") &&
				!access.HasPermission("users", "delete")
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "goroutine %d", i)
	}
}
