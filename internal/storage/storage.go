package storage

import (
	"context"
	"time"
)

// ObjectStore is the subset of object storage the recording locator needs:
// prefix listing and short-lived signed access.
type ObjectStore interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
