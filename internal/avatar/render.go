package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/webp"
)

// Rendered avatar output parameters.
const (
	// AvatarSize is the fixed square edge of the rendered output raster.
	AvatarSize = 512

	// subjectScale shrinks the drawn square so the subject stays fully inside
	// the output at every valid zoom/rotation combination.
	subjectScale = 0.8

	jpegQuality = 95

	// RenderedContentType is the MIME type of every rendered avatar.
	RenderedContentType = "image/jpeg"

	// RenderedFilename is the canonical asset name handed to the uploader.
	RenderedFilename = "avatar.jpg"
)

// Decode decodes a validated candidate into a raster image. The save path
// calls this explicitly so the compositor always receives a fully decoded
// source; Render never decodes lazily.
func Decode(c CandidateImage) (image.Image, error) {
	if len(c.Data) == 0 {
		return nil, ErrUnreadableImage
	}
	r := bytes.NewReader(c.Data)

	var (
		img image.Image
		err error
	)
	switch normalizeContentType(c.ContentType) {
	case "image/jpeg":
		img, err = jpeg.Decode(r)
	case "image/png":
		img, err = png.Decode(r)
	case "image/webp":
		img, err = webp.Decode(r)
	default:
		return nil, ErrInvalidFormat
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return img, nil
}

// Render composites the source under the transform into a fixed 512×512
// JPEG: white background, origin translated to the canvas center, context
// rotated by RotationDegrees, and the source drawn as a centered
// drawSize×drawSize square where drawSize = (512/(zoom/100)) * 0.8.
//
// A nil or empty source fails with ErrRenderUnavailable and produces no
// output; the caller must not proceed to upload.
func Render(src image.Image, state TransformState) ([]byte, error) {
	if src == nil {
		return nil, ErrRenderUnavailable
	}
	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return nil, ErrRenderUnavailable
	}

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scale := float64(clampZoom(state.ZoomPercent)) / 100
	drawSize := (AvatarSize / scale) * subjectScale

	theta := float64(state.RotationDegrees) * math.Pi / 180
	sin, cos := math.Sincos(theta)

	// Affine source→destination mapping equivalent to: translate to canvas
	// center, rotate by theta, draw the source scaled to drawSize×drawSize
	// centered on the origin.
	sx := drawSize / float64(sb.Dx())
	sy := drawSize / float64(sb.Dy())
	half := float64(AvatarSize) / 2
	minX := float64(sb.Min.X)
	minY := float64(sb.Min.Y)

	m := f64.Aff3{
		cos * sx, -sin * sy, half - cos*drawSize/2 + sin*drawSize/2 - (cos*sx*minX - sin*sy*minY),
		sin * sx, cos * sy, half - sin*drawSize/2 - cos*drawSize/2 - (sin*sx*minX + cos*sy*minY),
	}
	xdraw.CatmullRom.Transform(dst, m, src, sb, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	return buf.Bytes(), nil
}
