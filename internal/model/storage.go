package model

import (
	"context"
	"io"
	"time"
)

// Storage abstracts the object store holding user avatars.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
