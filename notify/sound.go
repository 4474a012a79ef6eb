package notify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// SoundOff disables the sound alert.
const SoundOff = "off"

// SupportedSoundExts lists the audio formats that can be decoded.
var SupportedSoundExts = []string{".ogg", ".mp3", ".flac", ".wav"}

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

// initSpeaker prepares the speaker once with the sample rate of the first
// sound played. Later sounds are resampled to that rate.
func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		bufferSize := 10
		speakerRate = rate
		speakerErr = speaker.Init(
			rate,
			rate.N(time.Second/time.Duration(bufferSize)),
		)
	})

	return speakerErr
}

// Sound plays an audio file when a session ends. Playback happens in the
// background; Notify returns once the file has been decoded.
type Sound struct {
	Path string
}

func NewSound(path string) *Sound {
	return &Sound{Path: path}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ogg", ".mp3", ".flac", ".wav":
	default:
		return nil, beep.Format{}, ErrUnsupportedSound.Fmt(ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

func (s *Sound) Notify(_, _ string) error {
	if s.Path == "" || s.Path == SoundOff {
		return nil
	}

	stream, format, err := decode(s.Path)
	if err != nil {
		return ErrSound.Wrap(err)
	}

	err = initSpeaker(format.SampleRate)
	if err != nil {
		_ = stream.Close()
		return ErrSound.Wrap(err)
	}

	var streamer beep.Streamer = stream
	if format.SampleRate != speakerRate {
		quality := 4
		streamer = beep.Resample(quality, format.SampleRate, speakerRate, stream)
	}

	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		_ = stream.Close()
	})))

	return nil
}
