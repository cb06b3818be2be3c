package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// Format identifies a clip container by its leading bytes
type Format uint8

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatFLAC
	FormatVorbis
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatFLAC:
		return "flac"
	case FormatVorbis:
		return "vorbis"
	case FormatMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// DetectFormat sniffs the container from magic bytes
// MP3 is accepted with an ID3v2 tag or a bare MPEG audio frame sync
func DetectFormat(data []byte) Format {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatVorbis
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	default:
		return FormatUnknown
	}
}

// decode opens a streaming decoder for the sniffed format
func decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	f := DetectFormat(data)
	r := bytes.NewReader(data)

	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch f {
	case FormatWAV:
		s, format, err = wav.Decode(r)
	case FormatFLAC:
		s, format, err = flac.Decode(r)
	case FormatVorbis:
		s, format, err = vorbis.Decode(io.NopCloser(r))
	case FormatMP3:
		s, format, err = mp3.Decode(io.NopCloser(r))
	default:
		return nil, beep.Format{}, ErrUnknownFormat
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return s, format, nil
}
