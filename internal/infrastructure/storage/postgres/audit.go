package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/audit"
)

const auditTable = "sys_audit"

// DefaultCompressThreshold is the payload size above which changes are
// stored zstd-compressed.
const DefaultCompressThreshold = 10 * 1024

type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one sys_audit row. Changes is always plain JSON once read.
type AuditEntry struct {
	ID                id.ID           `db:"id" json:"id"`
	EntityType        string          `db:"entity_type" json:"entityType"`
	EntityID          id.ID           `db:"entity_id" json:"entityId"`
	Action            audit.Action    `db:"action" json:"action"`
	Actor             string          `db:"actor" json:"actor"`
	Changes           json.RawMessage `db:"changes" json:"changes"`
	ChangesCompressed []byte          `db:"changes_compressed" json:"-"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo" json:"-"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
}

var auditCols = ExtractDBColumns[AuditEntry]()

// AuditLog writes and reads sys_audit through the caller's transaction, so
// an entry commits or rolls back with the change it describes.
type AuditLog struct {
	txm       *TxManager
	enc       *zstd.Encoder
	dec       *zstd.Decoder
	threshold int
}

var _ audit.Recorder = (*AuditLog)(nil)

func NewAuditLog(txm *TxManager) (*AuditLog, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &AuditLog{txm: txm, enc: enc, dec: dec, threshold: DefaultCompressThreshold}, nil
}

// Record implements audit.Recorder. The actor comes from ctx.
func (l *AuditLog) Record(ctx context.Context, entityType string, entityID id.ID, action audit.Action, changes map[string]any) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}

	e := AuditEntry{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      appctx.GetActor(ctx),
		CreatedAt:  time.Now().UTC(),
	}
	e.Changes, e.ChangesCompressed, e.CompressionAlgo = l.pack(payload)

	sql, args, err := Psql.Insert(auditTable).SetMap(StructToMap(e)).ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}
	if _, err := l.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", MapError(err, "audit"))
	}
	return nil
}

// History returns the newest entries of one entity first.
func (l *AuditLog) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]AuditEntry, error) {
	sql, args, err := Psql.
		Select(auditCols...).
		From(auditTable).
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	var entries []AuditEntry
	if err := pgxscan.Select(ctx, l.txm.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	for i := range entries {
		if entries[i].Changes, err = l.unpack(entries[i]); err != nil {
			return nil, err
		}
		entries[i].ChangesCompressed = nil
	}
	return entries, nil
}

func (l *AuditLog) pack(payload []byte) (json.RawMessage, []byte, CompressionAlgo) {
	if len(payload) <= l.threshold {
		return payload, nil, CompressionNone
	}
	return nil, l.enc.EncodeAll(payload, nil), CompressionZstd
}

func (l *AuditLog) unpack(e AuditEntry) (json.RawMessage, error) {
	if e.CompressionAlgo != CompressionZstd || len(e.ChangesCompressed) == 0 {
		return e.Changes, nil
	}
	out, err := l.dec.DecodeAll(e.ChangesCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress audit changes: %w", err)
	}
	return out, nil
}
