package cache

import (
	"context"
	"errors"
	"time"

	"github.com/imanol-10/kmanager/internal/domain"
)

// Snapshot is the last catalog state pulled from the store service. It is
// kept so the terminal can keep selling from a recent view when the
// service is briefly unreachable.
type Snapshot struct {
	Products   []domain.Product `json:"products"`
	Categories []string         `json:"categories"`
	FetchedAt  time.Time        `json:"fetched_at"`
}

type SnapshotCache interface {
	Get(ctx context.Context) (*Snapshot, error)
	Set(ctx context.Context, snapshot *Snapshot) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
