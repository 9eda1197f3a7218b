package batch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podbatch/internal/batch"
	"podbatch/internal/media"
	"podbatch/internal/remote"
	"podbatch/internal/ui"
)

// silentMP3 builds n MPEG-1 Layer III frames (128kbps, 44.1kHz).
func silentMP3(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		buf.Write(frame)
	}
	return buf.Bytes()
}

func TestRun_LocalBackendEndToEnd(t *testing.T) {
	source := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(source, "show-b"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(source, "show-a"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "show-b", "01-episode.mp3"), silentMP3(383), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "show-a", "02-episode.mp3"), []byte("not audio at all"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "show-a", "cover.jpg"), []byte("jpeg"), 0644))

	var report bytes.Buffer
	f := batch.NewFetcher(remote.NewLocal(), media.NewMP3Prober(), ui.NewReporter(&report, false), testLogger(), batch.Options{
		Source:     source,
		Extension:  ".mp3",
		Dest:       filepath.Join(out, "dest"),
		Quarantine: filepath.Join(out, "quarantine"),
		StagingDir: filepath.Join(out, "staging"),
		Hours:      1,
	})

	result, err := f.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"01-episode.mp3"}, dirNames(t, filepath.Join(out, "dest")))
	assert.Equal(t, []string{"02-episode.mp3"}, dirNames(t, filepath.Join(out, "quarantine")))
	assert.Equal(t, "00:00:10", result.TotalDuration)

	// accepted files are removed from the source, quarantined ones stay
	_, err = os.Stat(filepath.Join(source, "show-b", "01-episode.mp3"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(source, "show-a", "02-episode.mp3"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(source, "show-a", "cover.jpg"))
	assert.NoError(t, err)
}
