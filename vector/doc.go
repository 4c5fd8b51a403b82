// Package vector
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Configurable concurrent dynamic array.
//
// A Vector's locking strategy, capacity policy, admission gates and failure
// reporting are chosen at construction through control.Config:
//
//   - Global: one lock guards the whole container (OnlyGlobalMutex,
//     TransactionMode).
//   - Sharded: indices are split into fixed-width shards, each with its own
//     lock, always acquired in ascending shard order.
//   - Dangerous: no locks; the caller serializes access.
//
// Every operation resolves its locks, checks the fill-state gates, mutates
// under the held locks and releases on every exit path. Elements are copied
// in and out; Update, View and Modify give scoped access with the locks
// held for the duration of a callback.
//
// Failures are *api.Error values matched with errors.Is against the api
// sentinels. With ThrowOnFailure the same error is raised as a panic
// instead of returned.
//
// Example:
//
//	v, err := vector.NewBounded[int](1024, control.FromFlags(control.EnableMutexTimeout|control.EnableStats))
//	if err != nil {
//		return err
//	}
//	_ = v.PushBack(42)
//	x, err := v.Get(0)
package vector
