// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Tell returns the current position of s.
func Tell(s io.Seeker) (int64, error) {
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("tell: %w", err)
	}

	return pos, nil
}

// TryOpen calls open with rs. When open fails rs is moved back to the
// position it had before the call, so the next candidate sees the same bytes.
func TryOpen[T any](rs io.ReadSeeker, open func(io.ReadSeeker) (T, error)) (T, error) {
	var zero T

	pos, err := Tell(rs)
	if err != nil {
		return zero, err
	}

	v, err := open(rs)
	if err != nil {
		if _, serr := rs.Seek(pos, io.SeekStart); serr != nil {
			return zero, errors.Join(err, fmt.Errorf("restore position: %w", serr))
		}

		return zero, err
	}

	return v, nil
}

// Preserve runs fn and restores the position of rs afterwards, whatever fn
// returned.
func Preserve(rs io.Seeker, fn func() error) error {
	pos, err := Tell(rs)
	if err != nil {
		return err
	}

	ferr := fn()
	if _, serr := rs.Seek(pos, io.SeekStart); serr != nil {
		return errors.Join(ferr, fmt.Errorf("restore position: %w", serr))
	}

	return ferr
}

// OffsetReadSeeker presents rs as if its position at construction time
// were offset 0. Decoders that rewind to the absolute start of their input
// then rewind to where the stream actually begins.
type OffsetReadSeeker struct {
	rs   io.ReadSeeker
	base int64
}

func NewOffsetReadSeeker(rs io.ReadSeeker) (*OffsetReadSeeker, error) {
	base, err := Tell(rs)
	if err != nil {
		return nil, err
	}

	return &OffsetReadSeeker{rs: rs, base: base}, nil
}

// Base returns the absolute offset that maps to 0.
func (o *OffsetReadSeeker) Base() int64 { return o.base }

func (o *OffsetReadSeeker) Read(p []byte) (int, error) {
	return o.rs.Read(p)
}

func (o *OffsetReadSeeker) Seek(offset int64, whence int) (int64, error) {
	var (
		abs int64
		err error
	)

	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return 0, ErrNegativeOffset
		}
		abs, err = o.rs.Seek(o.base+offset, io.SeekStart)
	case io.SeekCurrent, io.SeekEnd:
		abs, err = o.rs.Seek(offset, whence)
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if err != nil {
		return 0, err
	}

	if abs < o.base {
		if _, err := o.rs.Seek(o.base, io.SeekStart); err != nil {
			return 0, err
		}

		return 0, ErrNegativeOffset
	}

	return abs - o.base, nil
}
