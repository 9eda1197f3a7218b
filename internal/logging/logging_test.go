package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	var quiet, loud bytes.Buffer

	New(&quiet, false).Debug("hidden detail")
	New(&quiet, false).Info("listing remote", "location", "fake:")
	New(&loud, true).Debug("shown detail")

	assert.NotContains(t, quiet.String(), "hidden detail")
	assert.Contains(t, quiet.String(), "listing remote")
	assert.Contains(t, quiet.String(), "fake:")
	assert.Contains(t, loud.String(), "shown detail")
}
