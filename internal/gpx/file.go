package gpx

import (
	"bufio"
	"errors"
	"os"
)

// File is a buffered, truncating output file. Abort removes it again so a
// failed conversion leaves nothing behind.
type File struct {
	f      *os.File
	w      *bufio.Writer
	path   string
	closed bool
}

func CreateFile(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &File{f: f, w: bufio.NewWriterSize(f, 64*1024), path: path}, nil
}

func (ff *File) Path() string { return ff.path }

func (ff *File) Write(p []byte) (int, error) {
	if ff.closed {
		return 0, errors.New("gpx file is closed")
	}
	return ff.w.Write(p)
}

func (ff *File) Close() error {
	if ff.closed {
		return nil
	}
	ff.closed = true
	if err := ff.w.Flush(); err != nil {
		_ = ff.f.Close()
		return err
	}
	return ff.f.Close()
}

// Abort closes and removes the file, discarding buffered output.
func (ff *File) Abort() error {
	if !ff.closed {
		ff.closed = true
		_ = ff.f.Close()
	}
	if err := os.Remove(ff.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
