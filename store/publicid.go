// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

// PublicID derives the numeric identifier exposed to clients from a
// backend-native key. The fold is the classic 32-bit string hash
// (h = h*31 + c, wrapping), made positive so ids survive JSON and URL
// path parameters unscathed. It is deterministic, so the same native
// key always yields the same id across restarts and across backends.
//
// Collisions are possible in the 31-bit space; Create logs them (see
// Collection.warnOnCollision) and resolution by id returns the first
// match in insertion order.
func PublicID(nativeID string) int64 {
	var h int32
	for _, r := range nativeID {
		h = h<<5 - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
