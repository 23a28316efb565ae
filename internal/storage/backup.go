package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

const snapshotLayout = "20060102T150405Z"

// BackupConfig locates snapshots in the bucket.
type BackupConfig struct {
	Bucket string
	Prefix string
	// Keep is how many snapshots survive pruning. Zero keeps everything.
	Keep int
}

// Backup uploads database snapshots and prunes old ones.
type Backup struct {
	svc Service
	cfg BackupConfig
	now func() time.Time
}

func NewBackup(svc Service, cfg BackupConfig) *Backup {
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	return &Backup{svc: svc, cfg: cfg, now: time.Now}
}

// SnapshotKey names a snapshot taken at t. Keys sort chronologically.
func (b *Backup) SnapshotKey(t time.Time) string {
	name := "taaza_khabar-" + t.UTC().Format(snapshotLayout) + ".db"
	if b.cfg.Prefix == "" {
		return name
	}
	return path.Join(b.cfg.Prefix, name)
}

// Upload stores the snapshot file and then applies retention. A pruning
// failure does not undo the upload; the location is returned with the error.
func (b *Backup) Upload(ctx context.Context, snapshotPath string, progress func(done, total int64)) (string, error) {
	location, err := b.svc.UploadFile(ctx, snapshotPath, UploadOptions{
		Bucket:           b.cfg.Bucket,
		Key:              b.SnapshotKey(b.now()),
		ProgressCallback: progress,
	})
	if err != nil {
		return "", err
	}

	if _, err := b.Prune(ctx); err != nil {
		return location, fmt.Errorf("prune snapshots: %w", err)
	}
	return location, nil
}

// Prune deletes all but the newest Keep snapshots and reports how many went.
func (b *Backup) Prune(ctx context.Context) (int, error) {
	if b.cfg.Keep <= 0 {
		return 0, nil
	}

	prefix := b.cfg.Prefix
	if prefix != "" {
		prefix += "/"
	}
	objects, err := b.svc.ListObjects(ctx, b.cfg.Bucket, prefix)
	if err != nil {
		return 0, err
	}

	var keys []string
	for _, obj := range objects {
		if strings.HasPrefix(path.Base(obj.Key), "taaza_khabar-") && strings.HasSuffix(obj.Key, ".db") {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) <= b.cfg.Keep {
		return 0, nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	stale := keys[b.cfg.Keep:]
	if err := b.svc.DeleteObjects(ctx, b.cfg.Bucket, stale); err != nil {
		return 0, err
	}
	return len(stale), nil
}
