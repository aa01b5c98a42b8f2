package library

import (
	"github.com/llehouerou/shelf/internal/tags"
)

// ExtractFunc reads one file into a TrackRecord.
type ExtractFunc func(path string) (TrackRecord, error)

// Extract reads the tags of the file at path. Each extension has exactly one
// reader; when it fails the returned record still carries Path and Extension,
// with empty Tags, alongside an *ExtractionFailure.
func Extract(path string) (TrackRecord, error) {
	rec := TrackRecord{
		Path:      path,
		Extension: ExtensionOf(path),
	}

	t, err := tags.Read(path)
	if err != nil {
		return rec, &ExtractionFailure{Path: path, Err: err}
	}

	rec.Tags = tagsFrom(t)
	return rec, nil
}

func tagsFrom(t *tags.Tag) Tags {
	artist := t.Artist
	if artist == "" {
		artist = t.AlbumArtist
	}
	return Tags{
		Genre:       t.Genre,
		Artist:      artist,
		Album:       t.Album,
		Title:       t.Title,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
	}
}
