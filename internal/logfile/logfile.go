// Package logfile appends sample records to the rotating on-storage log.
//
// Records go to the in-progress file 000000_0.LOG. When the next record
// would take it to the size limit the file is renamed to YYMMDD_<rev>.LOG,
// rev being the first revision not already taken, and a fresh in-progress
// file is started.
package logfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/sweeney/envlogger/internal/fault"
	"github.com/sweeney/envlogger/internal/logger"
)

// InProgress is the name of the file being written.
const InProgress = "000000_0.LOG"

// FirstRevision is the revision tried first for a finalized file.
const FirstRevision = 1

// Writer owns the open log file. It is used from the main loop only.
type Writer struct {
	fs   afero.Fs
	dir  string
	log  *logger.Logger
	file afero.File
	size int64
	rev  int
}

// NewWriter writes into dir on fs. Nothing is opened until the first Append.
func NewWriter(fs afero.Fs, dir string, log *logger.Logger) *Writer {
	return &Writer{fs: fs, dir: dir, log: log, rev: FirstRevision}
}

// FinalName is the name a file finalized on stamp gets at revision rev.
func FinalName(stamp time.Time, rev int) string {
	return fmt.Sprintf("%s_%d.LOG", stamp.Format("060102"), rev)
}

// Append writes line, rotating first when it would reach limit bytes.
// stamp names the file being finalized. Errors are *fault.Error values.
func (w *Writer) Append(line string, stamp time.Time, limit int) error {
	if err := w.open(); err != nil {
		return storageFault(err)
	}
	if w.size > 0 && w.size+int64(len(line)) >= int64(limit) {
		if err := w.rotate(stamp); err != nil {
			return storageFault(err)
		}
	}
	n, err := w.file.WriteString(line)
	w.size += int64(n)
	if err != nil {
		return storageFault(fmt.Errorf("write %s: %w", InProgress, err))
	}
	return nil
}

func (w *Writer) path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *Writer) open() error {
	if w.file != nil {
		return nil
	}
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", w.dir, err)
	}
	f, err := w.fs.OpenFile(w.path(InProgress), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", InProgress, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", InProgress, err)
	}
	w.file = f
	w.size = info.Size()
	w.log.Debugw("log file opened", "size", humanize.Bytes(uint64(w.size)))
	return nil
}

func (w *Writer) rotate(stamp time.Time) error {
	size := w.size
	if err := w.Close(); err != nil {
		return err
	}
	for {
		name := FinalName(stamp, w.rev)
		exists, err := afero.Exists(w.fs, w.path(name))
		if err != nil {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if exists {
			w.rev++
			continue
		}
		if err := w.fs.Rename(w.path(InProgress), w.path(name)); err != nil {
			return fmt.Errorf("rename to %s: %w", name, err)
		}
		w.log.Infow("log file rotated", "name", name, "size", humanize.Bytes(uint64(size)))
		break
	}
	return w.open()
}

// Close closes the open file, if any. The next Append reopens it.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.size = 0
	if err != nil {
		return fmt.Errorf("close %s: %w", InProgress, err)
	}
	return nil
}

// IsOpen reports whether a file is open.
func (w *Writer) IsOpen() bool {
	return w.file != nil
}

// Revision returns the current revision counter.
func (w *Writer) Revision() int {
	return w.rev
}

// Size returns the size of the in-progress file.
func (w *Writer) Size() int64 {
	return w.size
}

func storageFault(err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fault.New(fault.KindStorageFull, err)
	}
	return fault.New(fault.KindStorageRead, err)
}
