package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads formats that dhowden/tag handles poorly (Opus, Ogg,
// WAV, AIFF, WavPack, APE).
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	track, totalTracks := parseNumberPair(tags.get(taglib.TrackNumber))
	if totalTracks == 0 {
		totalTracks, _ = parseNumberPair(tags.get("TOTALTRACKS", "TRACKTOTAL"))
	}
	disc, _ := parseNumberPair(tags.get(taglib.DiscNumber))

	return &Tag{
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		Date:        tags.get(taglib.Date, "YEAR"),
	}, nil
}
