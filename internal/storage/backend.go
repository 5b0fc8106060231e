// Package storage provides key-value backends for learner progress and
// in-memory stores for transient bot state.
package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound is returned by Backend.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Backend is a durable flat key-value store. Put replaces the whole value.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// ProgressPrefix prefixes the keys of learner progress records.
const ProgressPrefix = "progress:"

// ProgressKey returns the key of the progress record of a profile.
func ProgressKey(userID int64) string {
	return ProgressPrefix + strconv.FormatInt(userID, 10)
}

// ParseProgressKey extracts the profile id from a progress key.
func ParseProgressKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, ProgressPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
