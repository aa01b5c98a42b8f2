package tags

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// ErrUnsupported is returned for extensions no reader handles.
var ErrUnsupported = errors.New("unsupported format")

// reader reads tags from one file. Implementations open the file at most
// once and close it before returning.
type reader func(path string) (*Tag, error)

var readers = map[string]reader{
	ExtMP3:  readMP3,
	ExtFLAC: readFLAC,
	ExtOPUS: readWithTaglib,
	ExtOGG:  readWithTaglib,
	ExtOGA:  readWithTaglib,
	ExtWAV:  readWithTaglib,
	ExtAIFF: readWithTaglib,
	ExtWV:   readWithTaglib,
	ExtAPE:  readWithTaglib,
	ExtM4A:  readGeneric,
	ExtMP4:  readGeneric,
}

// Read reads tag metadata from a music file.
// There is no fallback between readers: a file that the reader for its
// extension cannot parse is reported as an error.
func Read(path string) (*Tag, error) {
	read, ok := readers[Ext(path)]
	if !ok {
		read = readGeneric
	}
	t, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}
	t.Path = path
	t.sanitize()
	return t, nil
}

// readGeneric reads any container dhowden/tag understands (MP4/M4A, DSF, ...).
func readGeneric(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return &Tag{}, nil
		}
		return nil, err
	}

	track, totalTracks := m.Track()
	disc, _ := m.Disc()

	return &Tag{
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		Date:        yearToDate(m.Year()),
	}, nil
}
