package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_Lines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Title("Fetching %d hours", 2)
	r.OK("added %s", "a.mp3")
	r.Warn("could not delete %s", "a.mp3")
	r.Error("invalid %s", "b.mp3")
	r.Plain("done")

	out := buf.String()
	for _, want := range []string{"Fetching 2 hours", "added a.mp3", "could not delete a.mp3", "invalid b.mp3", "done"} {
		assert.Contains(t, out, want)
	}
}

func TestReporter_DetailOnlyWhenVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer

	NewReporter(&quiet, false).Detail("copying %s", "a.mp3")
	NewReporter(&loud, true).Detail("copying %s", "a.mp3")

	assert.Empty(t, quiet.String())
	assert.Contains(t, loud.String(), "copying a.mp3")
}
