package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"tcx2gpx/internal/config"
	"tcx2gpx/internal/gpx"
	"tcx2gpx/internal/tcx"
)

// ErrUsage marks a command line that cannot be run (no input, bad option).
var ErrUsage = errors.New("usage error")

// ErrOutputIsInput is returned when the output name would overwrite the input
// (for example converting ride.gpx).
var ErrOutputIsInput = errors.New("output file is the input file")

// InputNotFoundError is returned when the resolved input path does not exist.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("file %s doesn't exist", e.Path)
}

type Request struct {
	Input  string
	Config config.Config
	// Progress receives the dot-per-hundred output; nil disables it.
	Progress io.Writer
	// Logger defaults to log.Default().
	Logger *log.Logger
}

type Result struct {
	InputPath  string
	OutputPath string
	Summary    gpx.Summary
}

// ResolveInput appends defaultExt when name has no extension.
func ResolveInput(name, defaultExt string) string {
	if filepath.Ext(name) == "" {
		return name + defaultExt
	}
	return name
}

// OutputPath replaces the extension of name (if any) with ext.
func OutputPath(name, ext string) string {
	return name[:len(name)-len(filepath.Ext(name))] + ext
}

// Run converts one TCX file into <base>.gpx next to it. On failure the
// partially written output file is removed.
func Run(req Request) (Result, error) {
	if req.Input == "" {
		return Result{}, fmt.Errorf("%w: no input file", ErrUsage)
	}
	logger := req.Logger
	if logger == nil {
		logger = log.Default()
	}

	res := Result{
		InputPath:  ResolveInput(req.Input, req.Config.Input.DefaultExt),
		OutputPath: OutputPath(req.Input, req.Config.Output.Ext),
	}
	if filepath.Clean(res.OutputPath) == filepath.Clean(res.InputPath) {
		return res, fmt.Errorf("%w: %s", ErrOutputIsInput, res.InputPath)
	}
	if _, err := os.Stat(res.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, &InputNotFoundError{Path: res.InputPath}
		}
		return res, err
	}

	logger.Printf("parsing file %s", res.InputPath)
	root, err := tcx.Load(res.InputPath)
	if err != nil {
		return res, err
	}

	logger.Printf("creating file %s", res.OutputPath)
	out, err := gpx.CreateFile(res.OutputPath)
	if err != nil {
		return res, err
	}

	summary, err := gpx.NewEmitter(out, req.Config, req.Progress).Run(root)
	res.Summary = summary
	if err != nil {
		if abortErr := out.Abort(); abortErr != nil {
			logger.Printf("remove %s: %v", res.OutputPath, abortErr)
		}
		return res, fmt.Errorf("convert %s: %w", res.InputPath, err)
	}
	if err := out.Close(); err != nil {
		return res, err
	}

	if req.Progress != nil && summary.Located >= 100 {
		_, _ = io.WriteString(req.Progress, "\n")
	}
	logger.Printf("done: %d trackpoints, %d written, %d without position, %d with extensions",
		summary.Located, summary.Emitted, summary.Skipped, summary.WithExtensions)
	return res, nil
}
