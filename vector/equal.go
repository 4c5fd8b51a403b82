// File: vector/equal.go
// Author: momentics <momentics@gmail.com>
//
// Value and strict equality between two vectors.

package vector

import "github.com/momentics/hioload-vector/api"

// Equal compares size, maxSize and element-wise content.
func Equal[T comparable](a, b *Vector[T]) (bool, error) {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}

// StrictestEqual is Equal that additionally requires identical
// configurations, tunables included.
func StrictestEqual[T comparable](a, b *Vector[T]) (bool, error) {
	return a.StrictestEqualFunc(b, func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with a caller-supplied element comparison.
func (v *Vector[T]) EqualFunc(o *Vector[T], eq func(a, b T) bool) (bool, error) {
	return settle(v, v.compare(o, eq, false))
}

// StrictestEqualFunc is StrictestEqual with a caller-supplied element
// comparison.
func (v *Vector[T]) StrictestEqualFunc(o *Vector[T], eq func(a, b T) bool) (bool, error) {
	return settle(v, v.compare(o, eq, true))
}

func (v *Vector[T]) compare(o *Vector[T], eq func(a, b T) bool, strict bool) api.Result[bool] {
	const op = "equal"
	if o == nil || eq == nil {
		return api.Fail[bool](api.NewError(api.KindInvalidArgument, op))
	}
	if o == v {
		return api.Ok(true)
	}
	first, second := v, o
	if o.seq < v.seq {
		first, second = o, v
	}
	for {
		fst, fh, err := first.lockAll(op)
		if err != nil {
			return api.Fail[bool](err)
		}
		sst, sh, err := second.lockAll(op)
		if err != nil {
			fh.Release()
			return api.Fail[bool](err)
		}
		if first.refused(fst.cfg, accessRead) {
			if err := first.park(fst.cfg, accessRead, op, fh, sh); err != nil {
				return api.Fail[bool](err)
			}
			continue
		}
		if second.refused(sst.cfg, accessRead) {
			if err := second.park(sst.cfg, accessRead, op, fh, sh); err != nil {
				return api.Fail[bool](err)
			}
			continue
		}
		same := equalLocked(v, o, eq)
		if strict && fst.cfg != sst.cfg {
			same = false
		}
		release(fh, sh)
		first.stats.read(fst.cfg)
		second.stats.read(sst.cfg)
		return api.Ok(same)
	}
}

func equalLocked[T any](a, b *Vector[T], eq func(x, y T) bool) bool {
	n := a.size.Load()
	if n != b.size.Load() || a.maxSize.Load() != b.maxSize.Load() {
		return false
	}
	for i := uint64(0); i < n; i++ {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

