package bootstrap

import "context"

// AuditLog adalah event lifecycle proses (start/shutdown), bukan
// activity log domain yang disimpan di database.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
