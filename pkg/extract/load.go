package extract

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// A Capture is one image loaded from disk.
type Capture struct {
	Filename string
	Image    Image
	Exposure *Exposure // nil if the file had no usable EXIF
}

func (c Capture) String() string {
	s := fmt.Sprintf("%s %s", c.Filename, c.Image)
	if c.Exposure != nil {
		s += " (" + c.Exposure.String() + ")"
	}
	return s
}

func isImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// ListImageFiles expands the args into the image files they name,
// recursing into directories.
func ListImageFiles(args ...string) ([]string, error) {
	ret := []string{}
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {
		case err != nil:
			return nil, fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			contents, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				files, err := ListImageFiles(filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, err
				}
				ret = append(ret, files...)
			}

		case isImageFile(arg):
			ret = append(ret, arg)

		default:
			log.Printf("skipping %s, not an image\n", arg)
		}
	}

	return ret, nil
}

// LoadCapture decodes an image file into a BGRA32 Image. Transparent
// pixels become the mask color.
func LoadCapture(filename string, mask color.RGBA) (Capture, error) {
	c := Capture{Filename: filename}

	// EXIF is optional; PNGs and renders won't have any.
	if reader, err := os.Open(filename); err != nil {
		return c, fmt.Errorf("open+r exif '%s': %v", filename, err)
	} else {
		if ev, err := ReadExposure(reader); err == nil {
			c.Exposure = &ev
		}
		reader.Close()
	}

	if reader, err := os.Open(filename); err != nil {
		return c, fmt.Errorf("open+r img '%s': %v", filename, err)
	} else {
		defer reader.Close()
		img, _, err := image.Decode(reader)
		if err != nil {
			return c, fmt.Errorf("decode '%s': %v", filename, err)
		}
		c.Image = FromStdImage(img, mask)
	}

	return c, nil
}
