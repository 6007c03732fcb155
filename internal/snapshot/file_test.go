package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spendlog/internal/ledgererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFile_ThenImportFile(t *testing.T) {
	svc, st, _ := newTestService(t)
	seed(t, st, 2)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := svc.ExportFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spendlog-export-20261018T123000Z.json"), path)

	require.NoError(t, st.Clear())
	res, err := svc.ImportFile(context.Background(), path, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Len(t, st.Load(), 2)
}

func TestImportFile_RejectsOtherExtensions(t *testing.T) {
	svc, _, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "backup.csv")
	require.NoError(t, os.WriteFile(path, []byte(`{"transactions":[]}`), 0600))

	_, err := svc.ImportFile(context.Background(), path, ModeReplace)
	var ie *ledgererror.ImportError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), ".json")
}

func TestImportFile_UppercaseExtension(t *testing.T) {
	svc, _, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "BACKUP.JSON")
	require.NoError(t, os.WriteFile(path, []byte(`{"transactions":[]}`), 0600))

	_, err := svc.ImportFile(context.Background(), path, ModeReplace)
	assert.NoError(t, err)
}

func TestImportFile_Missing(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), ModeReplace)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportFile_Cancelled(t *testing.T) {
	svc, st, _ := newTestService(t)
	seed(t, st, 1)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transactions":[]}`), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.ImportFile(ctx, path, ModeReplace)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, st.Load(), 1)
}
