package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	return &buf
}

func TestEntryFormat(t *testing.T) {
	buf := capture(t)
	Info(CatFile, "saved", "name", "a.bin", "bytes", 12)

	line := buf.String()
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \[INFO\] \[file\] saved name=a.bin bytes=12\n$`, line)
}

func TestOddFieldCount(t *testing.T) {
	buf := capture(t)
	Warn(CatUI, "resize", "width")
	require.True(t, strings.HasSuffix(buf.String(), " width=<missing>\n"))
}

func TestErrorErr(t *testing.T) {
	buf := capture(t)
	ErrorErr(CatConfig, "load failed", errors.New("boom"), "path", "x.toml")
	require.Contains(t, buf.String(), "[ERROR] [config] load failed path=x.toml error=boom")
}

func TestMinLevelAndDisable(t *testing.T) {
	buf := capture(t)
	SetMinLevel(LevelWarn)
	Debug(CatEdit, "hidden")
	Info(CatEdit, "hidden")
	Warn(CatEdit, "shown")
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))

	SetEnabled(false)
	Error(CatEdit, "hidden")
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestNoLoggerIsSilent(t *testing.T) {
	SetOutput(nil)
	require.NotPanics(t, func() { Error(CatUI, "nobody listening") })
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "warning": LevelWarn, "Error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
		if in != "warning" {
			require.Equal(t, strings.ToUpper(in), got.String())
		}
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestInitWithTeaLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := InitWithTeaLog(path, "hexedit")
	require.NoError(t, err)
	Info(CatUI, "started")
	cleanup()
	SetOutput(nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [ui] started")
}
