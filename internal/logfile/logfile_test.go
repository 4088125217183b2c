package logfile

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/envlogger/internal/fault"
	"github.com/sweeney/envlogger/internal/logger"
)

const dir = "/card"

var stamp = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func newWriter(fs afero.Fs) *Writer {
	return NewWriter(fs, dir, logger.Nop())
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestFinalName(t *testing.T) {
	assert.Equal(t, "240309_1.LOG", FinalName(stamp, 1))
	assert.Equal(t, "991231_12.LOG", FinalName(time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC), 12))
}

func TestAppendOpensLazily(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newWriter(fs)
	assert.False(t, w.IsOpen())

	require.NoError(t, w.Append("a ; \n", stamp, 100))
	require.NoError(t, w.Append("b ; \n", stamp, 100))
	assert.True(t, w.IsOpen())
	assert.Equal(t, int64(10), w.Size())
	assert.Equal(t, "a ; \nb ; \n", readFile(t, fs, InProgress))
}

func TestAppendContinuesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, InProgress), []byte("old\n"), 0o644))

	w := newWriter(fs)
	require.NoError(t, w.Append("new\n", stamp, 100))
	assert.Equal(t, "old\nnew\n", readFile(t, fs, InProgress))
	assert.Equal(t, int64(8), w.Size())
}

func TestRotationNeverReachesLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newWriter(fs)
	line := strings.Repeat("x", 29) + "\n" // 30 bytes

	for i := 0; i < 10; i++ {
		require.NoError(t, w.Append(line, stamp, 100))
		assert.Less(t, w.Size(), int64(100))
	}

	infos, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	names := map[string]int64{}
	for _, fi := range infos {
		names[fi.Name()] = fi.Size()
		assert.Less(t, fi.Size(), int64(100), fi.Name())
	}
	assert.Equal(t, int64(90), names["240309_1.LOG"])
	assert.Equal(t, int64(90), names["240309_2.LOG"])
	assert.Equal(t, int64(90), names["240309_3.LOG"])
	assert.Equal(t, int64(30), names[InProgress])
}

func TestRotationSkipsTakenRevisions(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "240309_1.LOG"), []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "240309_2.LOG"), []byte("b"), 0o644))

	w := newWriter(fs)
	require.NoError(t, w.Append("0123456789", stamp, 15))
	require.NoError(t, w.Append("abcdefghij", stamp, 15))

	assert.Equal(t, 3, w.Revision())
	assert.Equal(t, "0123456789", readFile(t, fs, "240309_3.LOG"))
	assert.Equal(t, "a", readFile(t, fs, "240309_1.LOG"))
	assert.Equal(t, "abcdefghij", readFile(t, fs, InProgress))
}

func TestOversizedRecordWrittenAlone(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newWriter(fs)
	big := strings.Repeat("y", 150)

	require.NoError(t, w.Append("small\n", stamp, 100))
	require.NoError(t, w.Append(big, stamp, 100))
	assert.Equal(t, "small\n", readFile(t, fs, "240309_1.LOG"))
	assert.Equal(t, big, readFile(t, fs, InProgress))

	require.NoError(t, w.Append("next\n", stamp, 100))
	assert.Equal(t, big, readFile(t, fs, "240309_2.LOG"))
	assert.Equal(t, "next\n", readFile(t, fs, InProgress))
}

func TestCloseThenReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newWriter(fs)
	require.NoError(t, w.Append("a\n", stamp, 100))
	require.NoError(t, w.Close())
	assert.False(t, w.IsOpen())
	require.NoError(t, w.Close())

	require.NoError(t, w.Append("b\n", stamp, 100))
	assert.Equal(t, "a\nb\n", readFile(t, fs, InProgress))
}

func TestReadOnlyStorageIsReadFault(t *testing.T) {
	w := newWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := w.Append("a\n", stamp, 100)
	require.Error(t, err)
	kind, ok := fault.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindStorageRead, kind)
}

// fullFs fails every write with ENOSPC.
type fullFs struct {
	afero.Fs
}

func (f fullFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return fullFile{file}, nil
}

type fullFile struct {
	afero.File
}

func (f fullFile) WriteString(s string) (int, error) {
	return 0, &os.PathError{Op: "write", Path: f.Name(), Err: syscall.ENOSPC}
}

func TestFullStorageIsFullFault(t *testing.T) {
	w := newWriter(fullFs{afero.NewMemMapFs()})
	err := w.Append("a\n", stamp, 100)
	kind, ok := fault.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindStorageFull, kind)
}
