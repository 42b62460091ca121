package testvector

import (
	"io"
)

// CountingWriter counts the number of bytes written through it.
type CountingWriter struct {
	w       io.Writer
	Written int64
}

var _ = io.Writer(&CountingWriter{})
var _ = io.ReaderFrom(&CountingWriter{})

func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{
		w:       w,
		Written: 0,
	}
}

func (cw *CountingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.Written += int64(n)
	return
}

func (cw *CountingWriter) ReadFrom(r io.Reader) (n int64, err error) {
	if rf, ok := cw.w.(io.ReaderFrom); ok {
		n, err = rf.ReadFrom(r)
		cw.Written += n
		return
	}

	buf := make([]byte, 32*1024)
	for {
		nr, rerr := r.Read(buf)
		if nr > 0 {
			nw, werr := cw.w.Write(buf[:nr])
			n += int64(nw)
			cw.Written += int64(nw)
			if werr != nil {
				return n, werr
			}
			if nw != nr {
				return n, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return n, nil
		}
		if rerr != nil {
			return n, rerr
		}
	}
}
