package texture

import (
	"image"
	_ "image/png"
	"golang.org/x/image/draw"
	"github.com/hulylabs/3d/asset"
)

// maxMipLevels caps the generated mip chain; texture pages in this module
// are modest (a few atlas tiles), so a handful of halvings is always enough
// to reach a 1x1 base.
const maxMipLevels = 12

// LoadAtlas decodes an image resource into an Atlas with a full mip chain,
// downsampling by half at each level with golang.org/x/image/draw's
// Catmull-Rom scaler.
func LoadAtlas(path string) (*Atlas, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, _, err := image.Decode(res)
	if err != nil {
		return nil, err
	}

	base := toNRGBA(img)
	levels := []*image.NRGBA{base}
	w, h := base.Bounds().Dx(), base.Bounds().Dy()
	for i := 0; i < maxMipLevels && (w > 1 || h > 1); i++ {
		w = maxInt(1, w/2)
		h = maxInt(1, h/2)
		next := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(next, next.Bounds(), levels[len(levels)-1], levels[len(levels)-1].Bounds(), draw.Over, nil)
		levels = append(levels, next)
	}

	return &Atlas{Levels: levels}, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
