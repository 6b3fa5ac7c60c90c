package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fekuna/boutique-catalog-service/internal/media"
)

// openImages opens local image files for upload. The returned func closes
// them all.
func openImages(paths []string) ([]media.File, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]media.File, 0, len(paths))
	for _, p := range paths {
		if err := media.ValidateName(p); err != nil {
			closeAll()
			return nil, func() {}, err
		}
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open image: %w", err)
		}
		opened = append(opened, f)

		info, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, media.File{
			Name:        filepath.Base(p),
			Size:        info.Size(),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(p))),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
