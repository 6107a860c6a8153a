package viz

import (
	"fmt"
	"image/png"
	"os"

	"github.com/san-kum/recart/internal/render"
)

// LoadFrames decodes PNG files into frames indexed by their position in paths.
func LoadFrames(paths []string) ([]*render.Frame, error) {
	frames := make([]*render.Frame, 0, len(paths))
	for k, path := range paths {
		f, err := loadFrame(k, path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func loadFrame(index int, path string) (*render.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return render.FrameFromImage(index, img), nil
}
