package attachment

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

const (
	thumbMaxSide = 200
	thumbQuality = 80
)

// thumbnail вписывает изображение в 200x200 с сохранением пропорций; маленькие не увеличиваются.
func thumbnail(src image.Image) ([]byte, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > thumbMaxSide || h > thumbMaxSide {
		if w >= h {
			h = max(1, h*thumbMaxSide/w)
			w = thumbMaxSide
		} else {
			w = max(1, w*thumbMaxSide/h)
			h = thumbMaxSide
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
