package arena

import "unsafe"

// Make allocates space for n values of type T inside the arena and returns
// the reference plus a typed view over the payload. The elements are not
// initialized. Free the reference with (*Arena).Free when done.
//
// T must not contain Go pointers: the arena region is plain bytes and the
// garbage collector will not see anything stored in it.
func Make[T any](a *Arena, n int) (Ref, []T, error) {
	if n <= 0 {
		return 0, nil, ErrZeroSize
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	ref, b, err := a.Alloc(elemSize * n)
	if err != nil {
		return 0, nil, err
	}
	return ref, unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// Scratch allocates n bytes and returns the payload together with a release
// function, for scope-bound temporary buffers:
//
//	buf, release, err := a.Scratch(64)
//	if err != nil {
//	    return err
//	}
//	defer release()
func (a *Arena) Scratch(n int) ([]byte, func(), error) {
	ref, b, err := a.Alloc(n)
	if err != nil {
		return nil, nil, err
	}
	return b, func() { a.Free(ref) }, nil
}
