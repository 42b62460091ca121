package testvector

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// Convert reads a Wycheproof ECDSA verification test file from r and writes
// its binary form to w. It returns the number of bytes written.
//
// On an encoding error the records completed before the failing field are
// still flushed to w.
func Convert(r io.Reader, w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	enc := NewEncoder(bw)
	fields := NewExtractor(r)

	var encErr error
	for {
		f, ok := fields.Next()
		if !ok {
			break
		}
		if encErr = enc.Encode(f); encErr != nil {
			break
		}
	}
	if err := bw.Flush(); err != nil {
		return enc.Written() - int64(bw.Buffered()), errors.Wrap(err, "testvector: failed to flush output")
	}
	if encErr != nil {
		return enc.Written(), encErr
	}
	if err := fields.Err(); err != nil {
		return enc.Written(), errors.Wrap(err, "testvector: failed to read input")
	}
	return enc.Written(), nil
}

// ConvertFile converts the file at inPath and stores the result at outPath.
// The output is only put in place once the whole input converted
// successfully; on failure outPath is left untouched.
func ConvertFile(inPath, outPath string) (n int64, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrapf(ErrInputMissing, "%q", inPath)
		}
		return 0, errors.Wrapf(err, "testvector: failed to open input file %q", inPath)
	}
	defer in.Close()

	tmp, err := createOutputTemp(outPath)
	if err != nil {
		return 0, errors.Wrapf(err, "testvector: failed to open output file %q for writing", outPath)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	log.WithField("input", inPath).Debug("Converting")
	if n, err = Convert(in, tmp); err != nil {
		return n, errors.WithMessagef(err, "%s", inPath)
	}
	// An existing output keeps its permissions.
	if fi, serr := os.Stat(outPath); serr == nil && fi.Mode().IsRegular() {
		if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
			return n, errors.Wrapf(err, "testvector: failed to set mode of %q", tmp.Name())
		}
	}
	if err = tmp.Close(); err != nil {
		return n, errors.Wrapf(err, "testvector: failed to close %q", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), outPath); err != nil {
		return n, errors.Wrapf(err, "testvector: failed to move output to %q", outPath)
	}
	return n, nil
}

// createOutputTemp creates a file next to outPath. Unlike os.CreateTemp it
// uses mode 0666, so a new output gets the permissions the umask allows.
func createOutputTemp(outPath string) (*os.File, error) {
	prefix := filepath.Join(filepath.Dir(outPath), "."+filepath.Base(outPath)+".")
	for i := 0; ; i++ {
		name := prefix + strconv.Itoa(os.Getpid()) + "-" + strconv.Itoa(i)
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if os.IsExist(err) && i < 10000 {
			continue
		}
		return f, err
	}
}
