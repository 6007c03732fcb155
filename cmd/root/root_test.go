package root_test

import (
	"path/filepath"
	"testing"

	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "spendlog", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "spending ledger")
	assert.Contains(t, root.Cmd.Long, "spendlog records spending transactions")
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "backend", "storage-path"} {
		flag := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestGetContainer_BeforeSetup(t *testing.T) {
	original := root.AppContainer
	root.AppContainer = nil
	defer func() { root.AppContainer = original }()

	_, err := root.GetContainer()
	assert.ErrorIs(t, err, root.ErrNotInitialized)
	assert.NotNil(t, root.GetLogger())
}

func TestRootCommand_SetupAndTeardown(t *testing.T) {
	originalFlags := root.Flags
	defer func() {
		root.Flags = originalFlags
		root.AppContainer = nil
		root.AppConfig = nil
	}()
	t.Setenv("HOME", t.TempDir())
	root.Flags = root.GlobalFlags{
		Backend:     config.BackendSQLite,
		StoragePath: filepath.Join(t.TempDir(), "ledger.db"),
		LogLevel:    "warn",
	}

	cmd := &cobra.Command{}
	require.NoError(t, root.Cmd.PersistentPreRunE(cmd, nil))

	c, err := root.GetContainer()
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, c.GetConfig().Storage.Backend)
	assert.Equal(t, "warn", root.GetConfig().Log.Level)

	require.NoError(t, root.Cmd.PersistentPostRunE(cmd, nil))
	_, err = root.GetContainer()
	assert.Error(t, err)
}

func TestRootCommand_SetupRejectsBadOverride(t *testing.T) {
	originalFlags := root.Flags
	defer func() {
		root.Flags = originalFlags
		root.AppContainer = nil
	}()
	t.Setenv("HOME", t.TempDir())
	root.Flags = root.GlobalFlags{Backend: "redis"}

	err := root.Cmd.PersistentPreRunE(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
}
