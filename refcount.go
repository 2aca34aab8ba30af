package render

// refCount tracks the number of owners of a GPU resource.
// A resource starts with one owner. The GPU object is freed when the last
// owner releases it; releases past zero are ignored.
type refCount struct {
	refs int32
}

func newRefCount() refCount {
	return refCount{refs: 1}
}

// retain adds an owner. It reports false if the resource is already freed.
func (r *refCount) retain() bool {
	if r.refs <= 0 {
		return false
	}
	r.refs++
	return true
}

// release drops an owner and reports whether it was the last one.
// ok is false when the resource was already freed.
func (r *refCount) release() (last, ok bool) {
	if r.refs <= 0 {
		return false, false
	}
	r.refs--
	return r.refs == 0, true
}

// RefCount returns the current number of owners.
func (r *refCount) RefCount() int {
	return int(r.refs)
}

// Released returns true once the last owner has released the resource.
func (r *refCount) Released() bool {
	return r.refs <= 0
}
