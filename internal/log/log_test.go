package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_Format(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(Reset)

	Info(CatSave, "saved", "path", "/tmp/a.txt", "bytes", 3)

	line := buf.String()
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \[INFO\] \[save\] saved path=/tmp/a.txt bytes=3\n$`, line)
}

func TestLog_OddFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(Reset)

	Warn(CatAudio, "dropped", "id")
	require.Contains(t, buf.String(), "id=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatJournal, "record failed", errors.New("disk full"), "path", "/x")
	ErrorErr(CatJournal, "no error", nil)

	out := buf.String()
	require.Contains(t, out, "[ERROR] [journal] record failed path=/x error=disk full")
	require.Contains(t, out, "error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatInput, "armed")
	Info(CatInput, "confirmed")
	require.Empty(t, buf.String())

	Error(CatInput, "boom")
	require.Contains(t, buf.String(), "boom")

	buf.Reset()
	SetEnabled(false)
	Error(CatInput, "silent")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsSafe(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatUI, "nothing")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}
