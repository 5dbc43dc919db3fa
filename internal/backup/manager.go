package backup

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/storage"
)

// Manager periodically uploads a snapshot of the database file to object
// storage and prunes old snapshots.
type Manager interface {
	Start(ctx context.Context) error
	Shutdown()
	BackupNow(ctx context.Context) (string, error)
}

type Config struct {
	DatabasePath string
	Bucket       string
	KeyPrefix    string
	Interval     time.Duration
	MaxSnapshots int
	Logger       *logrus.Logger
}

type manager struct {
	cfg     Config
	storage storage.Service

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewManager(cfg Config, store storage.Service) Manager {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &manager{
		cfg:     cfg,
		storage: store,
	}
}

func (m *manager) Start(ctx context.Context) error {
	if m.cfg.Bucket == "" {
		return fmt.Errorf("backup bucket is required")
	}
	if m.cfg.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.run(runCtx)

	m.cfg.Logger.Infof("backup manager started, interval %s, bucket %s", m.cfg.Interval, m.cfg.Bucket)
	return nil
}

func (m *manager) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.cfg.Logger.Info("backup manager stopped")
}

func (m *manager) run(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			location, err := m.BackupNow(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				m.cfg.Logger.Warnf("backup failed: %v", err)
				continue
			}
			m.cfg.Logger.Infof("backup uploaded to %s", location)

			if err := m.prune(ctx); err != nil {
				m.cfg.Logger.Warnf("prune snapshots: %v", err)
			}
		}
	}
}

// BackupNow uploads one timestamped snapshot of the database file.
func (m *manager) BackupNow(ctx context.Context) (string, error) {
	key := path.Join(m.cfg.KeyPrefix, fmt.Sprintf("tasks-%s.db", time.Now().UTC().Format("20060102T150405Z")))
	location, err := m.storage.UploadFile(ctx, m.cfg.DatabasePath, m.cfg.Bucket, key)
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return location, nil
}

// prune removes the oldest snapshots beyond MaxSnapshots. Snapshot keys embed
// a sortable timestamp, so lexicographic order is chronological.
func (m *manager) prune(ctx context.Context) error {
	if m.cfg.MaxSnapshots <= 0 {
		return nil
	}

	objects, err := m.storage.ListObjects(ctx, m.cfg.Bucket, m.cfg.KeyPrefix)
	if err != nil {
		return err
	}
	if len(objects) <= m.cfg.MaxSnapshots {
		return nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Key < objects[j].Key
	})

	for _, obj := range objects[:len(objects)-m.cfg.MaxSnapshots] {
		if err := m.storage.DeletePrefix(ctx, m.cfg.Bucket, obj.Key); err != nil {
			return err
		}
	}
	return nil
}
