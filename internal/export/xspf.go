// Package export writes playlists as XSPF documents.
package export

import (
	"encoding/xml"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/llehouerou/shelf/internal/playlist"
)

const xspfNamespace = "http://xspf.org/ns/0/"

type xspfPlaylist struct {
	XMLName   xml.Name    `xml:"playlist"`
	Version   string      `xml:"version,attr"`
	Namespace string      `xml:"xmlns,attr"`
	Title     string      `xml:"title,omitempty"`
	Creator   string      `xml:"creator,omitempty"`
	Tracks    []xspfTrack `xml:"trackList>track"`
}

type xspfTrack struct {
	Location string `xml:"location"`
	Title    string `xml:"title,omitempty"`
	Creator  string `xml:"creator,omitempty"`
	Album    string `xml:"album,omitempty"`
	TrackNum int    `xml:"trackNum,omitempty"`
	Duration int64  `xml:"duration,omitempty"` // milliseconds
}

// fileURI turns an absolute path into a file:// URI, escaping as needed.
func fileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// pathFromURI is the inverse of fileURI.
func pathFromURI(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return location, nil
	}
	return filepath.FromSlash(u.Path), nil
}

func toTrack(e playlist.Entry) (xspfTrack, error) {
	abs, err := filepath.Abs(e.Path)
	if err != nil {
		return xspfTrack{}, err
	}
	t := e.Tags()
	return xspfTrack{
		Location: fileURI(abs),
		Title:    t.Title,
		Creator:  t.Artist,
		Album:    t.Album,
		TrackNum: t.TrackNumber,
		Duration: t.Duration.Milliseconds(),
	}, nil
}

func encode(w io.Writer, doc xspfPlaylist) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadLocations parses an XSPF document and returns the track paths in
// document order. Locations that are not file URIs are returned as is.
func ReadLocations(r io.Reader) ([]string, error) {
	var doc xspfPlaylist
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(doc.Tracks))
	for _, t := range doc.Tracks {
		p, err := pathFromURI(strings.TrimSpace(t.Location))
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
