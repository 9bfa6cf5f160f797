// Package cache remembers which manifest contents have already passed
// every naming check, so repeated check runs can skip manifests that
// cannot produce new findings.
//
// Stamps are keyed by a digest of the raw manifest bytes together with
// the extra reserved words in effect. Editing the manifest or extending
// the reserved set changes the key, so stale stamps are never consulted.
//
// MemoryCache serves a single process. FileCache persists stamps under a
// directory so consecutive command invocations share them:
//
//	fc, err := cache.NewFileCache(".namekit-cache")
//	if err != nil {
//		return err
//	}
//	key := cache.Key(content, extraReserved)
//	if _, ok := fc.Get(ctx, key); ok {
//	    // content already checked clean, skip it
//	}
package cache
