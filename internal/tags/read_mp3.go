package tags

import (
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
)

// readMP3 reads the ID3v2 tag of an MP3 file.
// A file without an ID3v2 header yields an empty Tag and no error.
func readMP3(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, totalTracks := parseNumberPair(getID3TextFrame(id3tag, "TRCK"))
	disc, _ := parseNumberPair(getID3TextFrame(id3tag, "TPOS"))

	date := getID3TextFrame(id3tag, "TDRC")
	if date == "" {
		date = id3tag.Year()
	}

	t := &Tag{
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       normalizeID3Genre(id3tag.Genre()),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		Date:        date,
	}

	if ms, err := strconv.Atoi(strings.TrimSpace(getID3TextFrame(id3tag, "TLEN"))); err == nil && ms > 0 {
		t.Duration = time.Duration(ms) * time.Millisecond
	}

	return t, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// normalizeID3Genre strips the ID3v1 numeric reference some taggers write,
// e.g. "(17)Rock" becomes "Rock". A bare "(17)" is kept as is.
func normalizeID3Genre(g string) string {
	if !strings.HasPrefix(g, "(") {
		return g
	}
	end := strings.Index(g, ")")
	if end < 0 || end == len(g)-1 {
		return g
	}
	if _, err := strconv.Atoi(g[1:end]); err != nil {
		return g
	}
	return g[end+1:]
}
