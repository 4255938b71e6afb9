// Package blobstore is the portal's artifact-store boundary: uploaded bytes
// go in, an opaque locator comes out. The locator is persisted verbatim on
// the submission record and resolved back to a fetchable URL on download.
package blobstore

import (
	"context"
	"errors"
)

// ErrUnknownLocator is returned when a locator was not produced by this
// store. Callers on the download path treat it as a missing artifact.
var ErrUnknownLocator = errors.New("unknown locator")

type Store interface {
	// Store persists data under a generated name derived from filename and
	// returns the locator.
	Store(ctx context.Context, filename string, data []byte) (string, error)

	// Remove deletes the artifact behind the locator. A missing artifact
	// surfaces as an error the caller may log and ignore; removal never has
	// to succeed for the owning operation to succeed.
	Remove(ctx context.Context, locator string) error

	// ResolveURL turns the locator into a URL a client can fetch.
	ResolveURL(ctx context.Context, locator string) (string, error)
}
