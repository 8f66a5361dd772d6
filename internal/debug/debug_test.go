package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(false)

	Log("hidden %d", 1)
	Assert(false, "hidden too")
	assert.Empty(t, buf.String())
}

func TestLogEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)
	defer SetEnabled(false)

	Log("rows=%d", 3)
	LogIf(false, "skipped")
	LogIf(true, "kept")
	Assert(true, "never printed")
	Assert(false, "row %d out of sync", 7)

	out := buf.String()
	assert.Contains(t, out, prefix)
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "skipped")
	assert.NotContains(t, out, "never printed")
	assert.Contains(t, out, "assertion failed: row 7 out of sync")
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)
	defer SetEnabled(false)

	Dump("rows", []string{"a", "b"})
	assert.Contains(t, buf.String(), "rows:")
	assert.Contains(t, buf.String(), `"b"`)
}
