// Package store adapts external byte stores to the engine's document-read
// contract: fetch the ACL document bytes at a well-known path, and signal
// absence distinctly from failure via [ErrNotFound]. The engine detects
// changes itself by fingerprinting the returned bytes, so implementations
// need no notification mechanism; a plain point read is enough.
package store
