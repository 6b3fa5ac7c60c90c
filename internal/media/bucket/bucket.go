// Package bucket stores image objects under slash-separated keys.
package bucket

import (
	"context"
	"errors"
	"io"
)

var ErrObjectExists = errors.New("object already exists")

type Object struct {
	Key          string
	Body         io.Reader
	Size         int64 // -1 when unknown
	ContentType  string
	CacheControl string
}

type Bucket interface {
	// Put writes a new object and fails with ErrObjectExists instead of
	// overwriting.
	Put(ctx context.Context, obj Object) error
	// Remove deletes the object; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
