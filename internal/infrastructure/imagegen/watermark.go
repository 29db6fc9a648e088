package imagegen

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail dimensions expected by the blog frontend.
const (
	targetWidth  = 861
	targetHeight = 381
)

const (
	logoWidthRatio = 0.15
	paddingRatio   = 0.02
	jpegQuality    = 90
)

// Watermarker crops generated assets to the thumbnail size and stamps the
// site logo at the bottom-left corner.
type Watermarker struct {
	logoPath string
}

// NewWatermarker wires the logo asset path.
func NewWatermarker(logoPath string) *Watermarker {
	return &Watermarker{logoPath: logoPath}
}

// Apply rewrites imagePath as a watermarked jpeg and removes the original.
// Returns the new path.
func (w *Watermarker) Apply(imagePath string) (string, error) {
	base, err := loadImage(imagePath)
	if err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	canvas := coverResize(base, targetWidth, targetHeight)

	logo, err := loadImage(w.logoPath)
	if err != nil {
		return "", fmt.Errorf("load logo: %w", err)
	}

	widthF := float64(targetWidth)
	logoWidth := int(widthF * logoWidthRatio)
	logoHeight := logoWidth * logo.Bounds().Dy() / logo.Bounds().Dx()
	scaledLogo := image.NewRGBA(image.Rect(0, 0, logoWidth, logoHeight))
	xdraw.CatmullRom.Scale(scaledLogo, scaledLogo.Bounds(), logo, logo.Bounds(), xdraw.Over, nil)

	padding := int(widthF * paddingRatio)
	offset := image.Pt(padding, targetHeight-logoHeight-padding)
	draw.Draw(canvas, scaledLogo.Bounds().Add(offset), scaledLogo, image.Point{}, draw.Over)

	newPath := replaceExt(imagePath, "_wm.jpg")
	out, err := os.Create(newPath)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	if newPath != imagePath {
		_ = os.Remove(imagePath)
	}

	return newPath, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// coverResize scales src to fill width x height, cropping the overflow
// around the center.
func coverResize(src image.Image, width, height int) *image.RGBA {
	sb := src.Bounds()
	srcW, srcH := float64(sb.Dx()), float64(sb.Dy())

	scale := float64(width) / srcW
	if s := float64(height) / srcH; s > scale {
		scale = s
	}

	scaledW := int(srcW*scale + 0.5)
	scaledH := int(srcH*scale + 0.5)

	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, xdraw.Over, nil)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	origin := image.Pt((scaledW-width)/2, (scaledH-height)/2)
	draw.Draw(dst, dst.Bounds(), scaled, origin, draw.Src)
	return dst
}

func replaceExt(path, suffix string) string {
	if idx := strings.LastIndex(path, "."); idx > strings.LastIndex(path, "/") {
		return path[:idx] + suffix
	}
	return path + suffix
}
