package library

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// writeTaggedMP3 writes one MP3 frame (MPEG1 Layer3, 128kbps, 44100Hz)
// carrying an ID3v2.4 tag.
func writeTaggedMP3(t *testing.T, dir, name, genre, artist, album, title string, track int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	frame := make([]byte, 417)
	frame[0], frame[1], frame[2] = 0xFF, 0xFB, 0x90
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open id3: %v", err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetGenre(genre)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	tag.SetTitle(title)
	if track > 0 {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(track))
	}
	if err := tag.Save(); err != nil {
		t.Fatalf("save id3: %v", err)
	}
	return path
}
