package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// Fixed card layout, portrait ID-card proportions.
const (
	cardWidth    = 400
	cardHeight   = 560
	bannerHeight = 96
	marginX      = 24
	lineHeight   = 22
)

var (
	bannerColor = color.RGBA{R: 0xC2, G: 0x41, B: 0x0C, A: 0xFF}
	cardBG      = color.RGBA{R: 0xFF, G: 0xF7, B: 0xED, A: 0xFF}
	inkColor    = color.RGBA{R: 0x1C, G: 0x19, B: 0x17, A: 0xFF}
	bannerInk   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// CardFileName returns the deterministic export filename for a record.
func CardFileName(id string) string {
	return fmt.Sprintf("sevak-card-%s.png", id)
}

// WriteCardPNG renders one volunteer's ID card into a fixed-layout PNG.
func WriteCardPNG(w io.Writer, v model.Volunteer) error {
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))

	draw.Draw(img, img.Bounds(), &image.Uniform{C: cardBG}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, cardWidth, bannerHeight), &image.Uniform{C: bannerColor}, image.Point{}, draw.Src)

	drawText(img, marginX, 40, bannerInk, "AAK SEVA FOUNDATION")
	drawText(img, marginX, 64, bannerInk, "VOLUNTEER IDENTITY CARD")

	y := bannerHeight + 48
	y = drawField(img, y, "Name", v.Name)
	y = drawField(img, y, "Reg. No", v.IDNumber)
	y = drawField(img, y, "Role", roleLabel(v.Role))
	y = drawField(img, y, "Phone", v.PhoneNumber)
	y = drawField(img, y, "Address", v.Address)
	y = drawField(img, y, "Joined", v.JoinDate.Format("02 Jan 2006"))

	drawText(img, marginX, cardHeight-24, inkColor, fmt.Sprintf("Card ID: %s", v.ID))

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode card PNG: %w", err)
	}
	return nil
}

func roleLabel(r model.Role) string {
	switch r {
	case model.RolePresident:
		return "President"
	case model.RoleVicePresident:
		return "Vice President"
	default:
		return "Soorveer Yodha"
	}
}

// drawField renders a label line and an indented value line, wrapping long
// values, and returns the next baseline.
func drawField(img *image.RGBA, y int, label, value string) int {
	drawText(img, marginX, y, inkColor, strings.ToUpper(label))
	y += lineHeight
	for _, line := range wrapText(value, 48) {
		drawText(img, marginX+12, y, inkColor, line)
		y += lineHeight
	}
	return y + 10
}

func drawText(img *image.RGBA, x, y int, c color.Color, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// wrapText splits text into lines of at most width characters, breaking on
// spaces where possible.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if len(candidate) > width && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
