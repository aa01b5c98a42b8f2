package tags

import (
	"bufio"
	"os"
	"time"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// readFLAC reads Vorbis comments and STREAMINFO from a FLAC file.
func readFLAC(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := goflac.ParseBytes(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}

	t := &Tag{}
	for _, meta := range file.Meta {
		switch meta.Type {
		case goflac.StreamInfo:
			t.Duration = streamInfoDuration(meta.Data)
		case goflac.VorbisComment:
			cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				continue
			}
			applyVorbisComment(t, cmt)
		}
	}
	return t, nil
}

func applyVorbisComment(t *Tag, cmt *flacvorbis.MetaDataBlockVorbisComment) {
	first := func(key string) string {
		values, err := cmt.Get(key)
		if err != nil || len(values) == 0 {
			return ""
		}
		return values[0]
	}

	t.Title = first(flacvorbis.FIELD_TITLE)
	t.Artist = first(flacvorbis.FIELD_ARTIST)
	t.AlbumArtist = first("ALBUMARTIST")
	t.Album = first(flacvorbis.FIELD_ALBUM)
	t.Genre = first(flacvorbis.FIELD_GENRE)
	t.Date = first(flacvorbis.FIELD_DATE)
	if t.Date == "" {
		t.Date = first("YEAR")
	}
	t.TrackNumber, t.TotalTracks = parseNumberPair(first(flacvorbis.FIELD_TRACKNUMBER))
	if t.TotalTracks == 0 {
		t.TotalTracks, _ = parseNumberPair(first("TOTALTRACKS"))
	}
	t.DiscNumber, _ = parseNumberPair(first("DISCNUMBER"))
}

// streamInfoDuration computes the stream length from a raw STREAMINFO block.
// Bytes 10-13 hold the 20-bit sample rate, channels and bits per sample;
// the 36-bit total sample count starts in the low nibble of byte 13.
func streamInfoDuration(data []byte) time.Duration {
	if len(data) < 18 {
		return 0
	}
	sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
	totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])
	if sampleRate == 0 {
		return 0
	}
	return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
}
