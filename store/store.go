// SPDX-License-Identifier: EPL-2.0

// Package store keeps rendered clips in a NATS JetStream object store.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const metaSampleRate = "sample_rate"

var (
	// ErrNotFound is returned by Get and Delete for unknown keys.
	ErrNotFound = errors.New("clip not found")
	// ErrEmptyClip rejects a Put without audio.
	ErrEmptyClip = errors.New("clip has no audio")
)

// Clip is a rendered WAV file and what is needed to play it back.
type Clip struct {
	Key        string
	SampleRate int
	WAV        []byte
}

// NatsStore stores clips as objects named by their key.
type NatsStore struct {
	bucket string
	store  nats.ObjectStore
}

// New creates the bucket, or binds to it when it already exists.
func New(js nats.JetStreamContext, bucket string) (*NatsStore, error) {
	store, err := js.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucket,
		Description: fmt.Sprintf("Rendered clips for %s.", bucket),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
			return nil, fmt.Errorf("create object store %q: %w", bucket, err)
		}
		store, err = js.ObjectStore(bucket)
		if err != nil {
			return nil, fmt.Errorf("bind object store %q: %w", bucket, err)
		}
	}

	return &NatsStore{bucket: bucket, store: store}, nil
}

// Put uploads c and returns its key. A clip without a key gets a random
// UUID.
func (n *NatsStore) Put(ctx context.Context, c Clip) (string, error) {
	if len(c.WAV) == 0 {
		return "", ErrEmptyClip
	}

	key := c.Key
	if key == "" {
		key = uuid.NewString()
	}

	_, err := n.store.Put(&nats.ObjectMeta{
		Name:        key,
		Description: "animalese clip",
		Metadata:    map[string]string{metaSampleRate: strconv.Itoa(c.SampleRate)},
	}, bytes.NewReader(c.WAV), nats.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("put %q to bucket %q: %w", key, n.bucket, err)
	}
	return key, nil
}

// Get downloads the clip stored under key.
func (n *NatsStore) Get(ctx context.Context, key string) (Clip, error) {
	obj, err := n.store.Get(key, nats.Context(ctx))
	if errors.Is(err, nats.ErrObjectNotFound) {
		return Clip{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return Clip{}, fmt.Errorf("get %q from bucket %q: %w", key, n.bucket, err)
	}

	data, readErr := io.ReadAll(obj)
	closeErr := obj.Close()
	if readErr != nil {
		return Clip{}, fmt.Errorf("read %q: %w", key, readErr)
	}
	if closeErr != nil {
		return Clip{}, fmt.Errorf("close %q: %w", key, closeErr)
	}

	info, err := obj.Info()
	if err != nil {
		return Clip{}, fmt.Errorf("info %q: %w", key, err)
	}

	clip := Clip{Key: key, WAV: data}
	if v, ok := info.Metadata[metaSampleRate]; ok {
		if clip.SampleRate, err = strconv.Atoi(v); err != nil {
			return Clip{}, fmt.Errorf("clip %q: bad %s %q: %w", key, metaSampleRate, v, err)
		}
	}
	return clip, nil
}

// Delete removes the clip stored under key.
func (n *NatsStore) Delete(_ context.Context, key string) error {
	err := n.store.Delete(key)
	if errors.Is(err, nats.ErrObjectNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("delete %q from bucket %q: %w", key, n.bucket, err)
	}
	return nil
}
