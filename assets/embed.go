package assets

import (
	"bytes"
	"embed"
	"image"
	_ "image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png
var assetsFS embed.FS

// WorkerSheet is the embedded worker sprite sheet as an *ebiten.Image. Frames
// are laid out in 32x32 cells, one clip per row.
var WorkerSheet *ebiten.Image

// Per-frame pixel size of the worker sheet.
const (
	WorkerFrameWidth  = 32
	WorkerFrameHeight = 32
)

func init() {
	WorkerSheet = loadImageFromAssets("worker-Sheet.png")
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := assetsFS.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

func loadImageFromAssets(path string) *ebiten.Image {
	img, err := LoadImage(path)
	if err != nil {
		log.Fatalf("embed: load %s: %v", path, err)
	}
	return img
}
