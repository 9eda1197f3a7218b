// Package media reads the duration of downloaded audio files.
package media

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"
)

var ErrInvalidMedia = errors.New("invalid media metadata")

type Info struct {
	Duration time.Duration
	Frames   int
}

// Seconds returns the duration truncated to whole seconds.
func (i Info) Seconds() int64 {
	return int64(i.Duration / time.Second)
}

//go:generate mockgen -destination=../mocks/mock_prober.go -package=mocks podbatch/internal/media Prober

type Prober interface {
	Probe(path string) (Info, error)
}

// MP3Prober measures MPEG audio by walking every frame header.
type MP3Prober struct{}

func NewMP3Prober() *MP3Prober {
	return &MP3Prober{}
}

func (p *MP3Prober) Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := Measure(f)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Measure sums the duration of every decodable frame in r. The stream must
// open with an MPEG frame sync, optionally behind an ID3v2 tag. Streams with
// no frames, or where most bytes had to be skipped to find frames, are
// rejected with ErrInvalidMedia.
func Measure(r io.Reader) (Info, error) {
	cr := &countingReader{r: r}
	br := bufio.NewReader(cr)

	tag, err := skipID3v2(br)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	head, err := br.Peek(2)
	if err != nil || !isFrameSync(head) {
		return Info{}, fmt.Errorf("%w: stream does not start with an audio frame", ErrInvalidMedia)
	}

	var (
		info    Info
		frame   mp3.Frame
		skipped int
		lost    int64
	)

	dec := mp3.NewDecoder(br)
	for {
		err := dec.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			if info.Frames == 0 {
				return Info{}, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
			}
			// trailing garbage after valid audio
			break
		}
		if info.Frames == 0 && skipped > 0 {
			return Info{}, fmt.Errorf("%w: %d bytes before the first frame", ErrInvalidMedia, skipped)
		}
		lost += int64(skipped)
		info.Duration += frame.Duration()
		info.Frames++
	}

	if info.Frames == 0 {
		return Info{}, fmt.Errorf("%w: no audio frames found", ErrInvalidMedia)
	}
	if audio := cr.n - tag; lost > audio-lost {
		return Info{}, fmt.Errorf("%w: %d of %d bytes are not audio frames", ErrInvalidMedia, lost, audio)
	}
	return info, nil
}

const id3HeaderLen = 10

// skipID3v2 discards a leading ID3v2 tag and returns its length in bytes.
func skipID3v2(br *bufio.Reader) (int64, error) {
	head, err := br.Peek(id3HeaderLen)
	if err != nil || string(head[:3]) != "ID3" {
		return 0, nil
	}
	// tag size is four 7-bit bytes
	size := int64(0)
	for _, b := range head[6:10] {
		if b&0x80 != 0 {
			return 0, errors.New("malformed ID3v2 tag size")
		}
		size = size<<7 | int64(b)
	}
	size += id3HeaderLen
	if head[5]&0x10 != 0 {
		size += id3HeaderLen
	}
	if _, err := br.Discard(int(size)); err != nil {
		return 0, fmt.Errorf("truncated ID3v2 tag: %w", err)
	}
	return size, nil
}

func isFrameSync(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
