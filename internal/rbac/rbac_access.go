package rbac

import (
	"encoding/json"
	"sync"
	"time"
)

// ResolvedRole adalah role yang sudah di-resolve ke label tampilannya.
type ResolvedRole struct {
	Kind     RoleKind `json:"kind"`
	Label    string   `json:"label"`
	CustomID string   `json:"custom_id,omitempty"`
}

type PermissionPair struct {
	Module string `json:"module"`
	Action string `json:"action"`
}

// Access adalah snapshot eksplisit dari hak akses satu identity.
// Snapshot ini immutable; setelah mutasi role/permission pemanggil wajib
// memanggil Service.Invalidate lalu resolve ulang.
type Access struct {
	UserID      string           `json:"user_id"`
	Roles       []ResolvedRole   `json:"roles"`
	Permissions []PermissionPair `json:"permissions"`
	AllowAll    bool             `json:"allow_all"`
	ResolvedAt  time.Time        `json:"resolved_at"`

	indexOnce sync.Once
	permIndex map[PermissionPair]struct{}
	roleIndex map[string]struct{}
}

// index dibangun sekali; satu snapshot dipakai bersama oleh banyak request
// (hasil singleflight dan cache), jadi pembangunannya harus aman konkuren.
func (a *Access) index() {
	a.indexOnce.Do(func() {
		a.permIndex = make(map[PermissionPair]struct{}, len(a.Permissions))
		for _, p := range a.Permissions {
			a.permIndex[p] = struct{}{}
		}
		a.roleIndex = make(map[string]struct{}, len(a.Roles))
		for _, r := range a.Roles {
			a.roleIndex[r.Label] = struct{}{}
		}
	})
}

// HasPermission: true jika pair ada dalam set, atau identity super_admin
// (AllowAll, tanpa lookup tabel permission).
func (a *Access) HasPermission(module, action string) bool {
	if a == nil {
		return false
	}
	if a.AllowAll {
		return true
	}
	a.index()
	_, ok := a.permIndex[PermissionPair{Module: module, Action: action}]
	return ok
}

// HasRole: true jika irisan dengan kandidat tidak kosong.
func (a *Access) HasRole(candidates ...string) bool {
	if a == nil {
		return false
	}
	a.index()
	for _, c := range candidates {
		if _, ok := a.roleIndex[c]; ok {
			return true
		}
	}
	return false
}

func (a *Access) IsAdmin() bool {
	return a.HasRole(string(RoleSuperAdmin), string(RoleAdmin))
}

// MarshalBinary/UnmarshalBinary agar snapshot bisa disimpan di redis apa adanya.
func (a *Access) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *Access) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}
