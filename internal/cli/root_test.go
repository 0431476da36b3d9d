package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/srcls/pkg/srcls"
)

// executeRoot runs the root command in an isolated working directory.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetListFlags()
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// isolate moves the test into an empty directory with no srcls environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(srcls.EnvRoot, "")
	t.Setenv(srcls.EnvOnError, "")
	return dir
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestRoot_DefaultRootIsSrc(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "src/a.txt", "src/sub/b.txt", "other/c.txt")

	stdout, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nsub/b.txt\n", stdout)
}

func TestRoot_PositionalRoot(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "srcdir/a.txt")

	stdout, _, err := executeRoot(t, "srcdir/")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", stdout)
}

func TestRoot_AbsoluteRoot(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "deep/tree/x.go")

	stdout, _, err := executeRoot(t, filepath.Join(dir, "deep"))
	require.NoError(t, err)
	assert.Equal(t, "tree/x.go\n", stdout)
}

func TestRoot_MissingRootSucceedsEmpty(t *testing.T) {
	isolate(t)

	stdout, _, err := executeRoot(t, "nowhere")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRoot_EmptyRoot(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))

	stdout, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRoot_DirectoryNamedLikeSubcommand(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "version/a.txt")

	stdout, _, err := executeRoot(t, "./version")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", stdout)

	assert.Contains(t, rootCmd.Long, `"srcls ./version"`)
}

func TestRoot_TooManyArgs(t *testing.T) {
	isolate(t)

	_, _, err := executeRoot(t, "a", "b")
	require.Error(t, err)
	assert.Equal(t, srcls.ExitUsageError, srcls.ExitCodeForError(err))
}

func TestRoot_UnknownFlag(t *testing.T) {
	isolate(t)

	_, _, err := executeRoot(t, "--follow-links")
	require.Error(t, err)
	assert.Equal(t, srcls.ExitUsageError, srcls.ExitCodeForError(err))
}

func TestRoot_InvalidPolicy(t *testing.T) {
	isolate(t)

	_, _, err := executeRoot(t, "--on-error", "retry")
	require.Error(t, err)
	assert.Equal(t, srcls.ExitConfigError, srcls.ExitCodeForError(err))
}

func TestRoot_EnvironmentRoot(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "lib/z.txt", "src/a.txt")
	t.Setenv(srcls.EnvRoot, "lib")

	stdout, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, "z.txt\n", stdout)
}

func TestRoot_ArgumentBeatsEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "lib/z.txt", "src/a.txt")
	t.Setenv(srcls.EnvRoot, "lib")

	stdout, _, err := executeRoot(t, "src")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", stdout)
}

func TestRoot_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "fromenv/e.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(srcls.EnvRoot+"=fromenv\n"), 0o644))
	// godotenv never overrides variables that are already present.
	require.NoError(t, os.Unsetenv(srcls.EnvRoot))

	stdout, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, "e.txt\n", stdout)
}

func TestRoot_ProjectConfig(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "code/main.go", "src/a.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, srcls.ConfigFileName), []byte("root: code\n"), 0o644))

	stdout, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, "main.go\n", stdout)

	stdout, _, err = executeRoot(t, "src")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", stdout)
}

func TestRoot_ExplicitConfig(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "alt/x.txt")
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: alt\non_error: skip\n"), 0o644))

	stdout, _, err := executeRoot(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "x.txt\n", stdout)
}

func TestRoot_ExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)

	_, _, err := executeRoot(t, "--config", filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, srcls.ExitConfigError, srcls.ExitCodeForError(err))
}

func TestRoot_BrokenDefaultConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, srcls.ConfigFileName), []byte("on_error: sometimes\n"), 0o644))

	_, _, err := executeRoot(t)
	require.Error(t, err)
	assert.Equal(t, srcls.ExitConfigError, srcls.ExitCodeForError(err))
}

func TestRoot_VerboseGoesToStderr(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "src/a.txt")

	stdout, stderr, err := executeRoot(t, "-v")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", stdout)
	assert.Contains(t, stderr, "[VERBOSE] Root: src/, on error: abort")
	assert.Contains(t, stderr, "[VERBOSE] Listed 1 file(s)")
}

func lockDir(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	require.NoError(t, os.Chmod(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
}

func TestRoot_UnreadableDirectory_Abort(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "src/a.txt", "src/locked/s.txt")
	lockDir(t, filepath.Join(dir, "src", "locked"))

	stdout, stderr, err := executeRoot(t)
	require.Error(t, err)
	assert.Equal(t, srcls.ExitTraversalError, srcls.ExitCodeForError(err))
	assert.Equal(t, "a.txt\n", stdout)
	assert.Contains(t, stderr, "locked")
}

func TestRoot_UnreadableDirectory_Skip(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "src/a.txt", "src/locked/s.txt", "src/z.txt")
	lockDir(t, filepath.Join(dir, "src", "locked"))

	stdout, stderr, err := executeRoot(t, "--on-error", "skip")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nz.txt\n", stdout)
	assert.Contains(t, stderr, "[ERROR] Skipping")
}

func TestRoot_PolicyFromEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFiles(t, dir, "src/a.txt", "src/locked/s.txt")
	lockDir(t, filepath.Join(dir, "src", "locked"))
	t.Setenv(srcls.EnvOnError, "skip")

	stdout, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", stdout)
}
