package activitylog

import (
	"context"
	"encoding/json"

	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/sequence"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sequenceStream = "activity_logs"

// Entry adalah satu event audit dari sudut pandang pemanggil.
type Entry struct {
	UserID      string
	PerformedBy string
	ActionType  string
	Description string
	Module      string
	Target      string
	Status      string
	Metadata    map[string]any
}

// Writer menulis audit trail secara best-effort: kegagalan hanya dicatat ke
// log, tidak pernah menggagalkan operasi utamanya.
//
//go:generate mockgen -source=activitylog_writer.go -destination=mock/activitylog_writer_mock.go -package=mock
type Writer interface {
	Log(ctx context.Context, entry Entry)
}

type writer struct {
	repo   Repository
	seq    sequence.Repository
	logger *zap.Logger
}

func NewWriter(repo Repository, seq sequence.Repository, logger *zap.Logger) Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &writer{repo: repo, seq: seq, logger: logger.Named("activitylog")}
}

func (w *writer) Log(ctx context.Context, entry Entry) {
	l := contextutil.GetLogger(ctx, w.logger)

	row := &ActivityLog{
		ID:          uuid.New(),
		ActionType:  entry.ActionType,
		Description: entry.Description,
		Module:      entry.Module,
		Target:      entry.Target,
		Status:      entry.Status,
	}
	if row.Status == "" {
		row.Status = StatusSuccess
	}

	if id, err := uuid.Parse(entry.UserID); err == nil {
		row.UserID = &id
	}
	if id, err := uuid.Parse(entry.PerformedBy); err == nil {
		row.PerformedBy = &id
	}

	if entry.Metadata != nil {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			l.Warn("activity metadata not serializable", zap.Error(err))
		} else {
			row.Metadata = raw
		}
	}

	// Nomor urut monotonic; satu stream global agar urutan kausal antar user
	// tetap terbaca dari seq, bukan hanya created_at.
	seq, err := w.seq.NextValue(ctx, sequenceStream)
	if err != nil {
		l.Error("activity sequence failed", zap.Error(err), zap.String("action_type", entry.ActionType))
		return
	}
	row.Seq = seq

	if err := w.repo.Create(ctx, row); err != nil {
		l.Error("activity log write failed",
			zap.Error(err),
			zap.String("action_type", entry.ActionType),
			zap.String("target", entry.Target),
		)
	}
}
