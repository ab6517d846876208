package ports

import "context"

// PhotoStore persists uploaded profile photos and serves them back by path.
type PhotoStore interface {
	// Save validates the upload (JPEG/PNG, max 2MB) and writes it under a
	// generated unique filename, returning the public web path.
	Save(ctx context.Context, photo *PhotoUpload) (string, error)
	// Remove deletes the file behind a web path. Best-effort: failures are
	// logged, never propagated.
	Remove(webPath string)
}
