// Package metadata reads embedded date-taken metadata and filesystem
// timestamps for media files.
package metadata

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/imagemeta"
)

// Reader reads the embedded "date taken" text for a file.
// The second return value reports whether a value was present; absence
// (non-media files, stripped metadata) is an expected case, not an error.
type Reader interface {
	ReadDateTaken(path string) (string, bool, error)
}

// exifLayout is the canonical EXIF timestamp layout used when the decoder
// hands back an already-parsed time value instead of the raw tag text.
const exifLayout = "2006:01:02 15:04:05"

// dateTakenTags are the EXIF tags that carry capture time, in preference
// order. DateTimeOriginal is the shutter time; DateTimeDigitized is a common
// stand-in on scanned media.
var dateTakenTags = []string{"DateTimeOriginal", "DateTimeDigitized"}

// ExifReader reads date-taken metadata from image files via their EXIF block.
type ExifReader struct {
	extensions map[string]bool
}

// NewExifReader creates a reader limited to the given file extensions
// (lowercase, dot included). Files with other extensions report absent.
func NewExifReader(extensions []string) *ExifReader {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &ExifReader{extensions: exts}
}

// ReadDateTaken extracts the capture-time text from the file's EXIF data.
// Files that are not images, cannot be decoded, or carry no capture-time tag
// report absent. Only failure to read the file itself is returned as an error.
func (r *ExifReader) ReadDateTaken(path string) (string, bool, error) {
	if !r.extensions[strings.ToLower(filepath.Ext(path))] {
		return "", false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}

	found := make(map[string]string, len(dateTakenTags))
	wanted := make(map[string]bool, len(dateTakenTags))
	for _, tag := range dateTakenTags {
		wanted[tag] = true
	}

	_, err = imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return wanted[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if s := tagText(ti.Value); s != "" {
				found[ti.Tag] = s
			}
			return nil
		},
	})
	if err != nil {
		// Undecodable image data means no usable metadata, not a failure.
		return "", false, nil
	}

	for _, tag := range dateTakenTags {
		if s, ok := found[tag]; ok {
			return s, true, nil
		}
	}
	return "", false, nil
}

// tagText converts a decoded tag value to its textual form.
func tagText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format(exifLayout)
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	default:
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
}
