package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"net/url"
	"strings"

	"golang.org/x/image/font"

	// logo formats accepted in data URLs
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Page geometry in layout pixels (96 dpi). PageWidth is 210 mm and
// MinPageHeight keeps the A4 aspect ratio, so a short report fills one page.
const (
	PageWidth     = 794
	MinPageHeight = 1123
	PagePadding   = 48
	ContentWidth  = PageWidth - 2*PagePadding
)

const (
	logoMaxHeight    = 64
	logoMarginBottom = 32
	titleScale       = 2
	bodyLineHeight   = 18
	headingHeight    = 20
	headingGap       = 8
	itemGap          = 6
	bulletIndent     = 16
	bulletSize       = 4
	sectionGap       = 20
	summaryGap       = 24
	headerRuleGap    = 16
	headerGap        = 32
)

// Palette used by the document
var (
	ColorTitle  = color.RGBA{0x1d, 0x1d, 0x1f, 0xff}
	ColorBody   = color.RGBA{0x42, 0x42, 0x45, 0xff}
	ColorMuted  = color.RGBA{0x6e, 0x6e, 0x73, 0xff}
	ColorAccent = color.RGBA{0x00, 0x71, 0xe3, 0xff}
	ColorRule   = color.RGBA{0xe8, 0xe8, 0xed, 0xff}
)

// ErrExternalLogo is returned for logos that are not self-contained data URLs
var ErrExternalLogo = errors.New("logo is not an embedded data URL")

// BlockKind identifies a positioned layout block
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockBullet
	BlockRule
	BlockImage
)

// Block is one positioned element of a laid-out document
type Block struct {
	Kind  BlockKind
	X, Y  int
	W, H  int
	Text  string
	Scale int // glyph magnification for text
	Bold  bool
	Color color.RGBA
	Image image.Image
}

// Layout is a measured document: fixed width, height grown to fit content
type Layout struct {
	Width  int
	Height int
	Blocks []Block
}

// LayoutDocument positions every section of doc on a PageWidth-wide canvas
func LayoutDocument(doc Document) (*Layout, error) {
	faceMu.Lock()
	defer faceMu.Unlock()

	l := &Layout{Width: PageWidth}
	y := PagePadding

	for _, s := range doc.Sections {
		switch s.Kind {
		case SectionLogo:
			img, err := DecodeLogo(s.LogoURL)
			if err != nil {
				return nil, fmt.Errorf("failed to decode logo: %w", err)
			}
			w, h := fitLogo(img.Bounds().Dx(), img.Bounds().Dy())
			l.Blocks = append(l.Blocks, Block{Kind: BlockImage, X: PagePadding, Y: y, W: w, H: h, Image: img})
			y += h + logoMarginBottom

		case SectionHeader:
			th := Face.Metrics().Height.Ceil() * titleScale
			l.Blocks = append(l.Blocks, l.text(s.Heading, y, titleScale, true, ColorTitle, PagePadding))
			y += th + headingGap
			for i, line := range s.Lines {
				y = l.paragraph(line, y, PagePadding, ContentWidth, ColorMuted, i == 0)
			}
			y += headerRuleGap
			l.Blocks = append(l.Blocks, Block{Kind: BlockRule, X: PagePadding, Y: y, W: ContentWidth, H: 1, Color: ColorRule})
			y += 1 + headerGap

		case SectionSummary:
			y = l.heading(s.Heading, y)
			y = l.paragraph(s.Text, y, PagePadding, ContentWidth, ColorBody, false)
			y += summaryGap

		case SectionList:
			y = l.heading(s.Heading, y)
			for i, item := range s.Items {
				if i > 0 {
					y += itemGap
				}
				l.Blocks = append(l.Blocks, Block{
					Kind:  BlockBullet,
					X:     PagePadding + 2,
					Y:     y + (bodyLineHeight-bulletSize)/2,
					W:     bulletSize,
					H:     bulletSize,
					Color: ColorAccent,
				})
				y = l.paragraph(item, y, PagePadding+bulletIndent, ContentWidth-bulletIndent, ColorBody, false)
			}
			y += sectionGap

		default:
			return nil, fmt.Errorf("unknown section kind %s", s.Kind)
		}
	}

	l.Height = y + PagePadding
	if l.Height < MinPageHeight {
		l.Height = MinPageHeight
	}
	return l, nil
}

func (l *Layout) text(s string, y, scale int, bold bool, c color.RGBA, x int) Block {
	return Block{
		Kind:  BlockText,
		X:     x,
		Y:     y,
		W:     font.MeasureString(FaceFor(bold), s).Ceil() * scale,
		H:     Face.Metrics().Height.Ceil() * scale,
		Text:  s,
		Scale: scale,
		Bold:  bold,
		Color: c,
	}
}

func (l *Layout) heading(s string, y int) int {
	l.Blocks = append(l.Blocks, l.text(s, y+(headingHeight-Face.Metrics().Height.Ceil())/2, 1, true, ColorTitle, PagePadding))
	return y + headingHeight + headingGap
}

// paragraph wraps s into width and appends one text block per line
func (l *Layout) paragraph(s string, y, x, width int, c color.RGBA, bold bool) int {
	for _, line := range wrap(FaceFor(bold), s, width) {
		b := l.text(line, y+(bodyLineHeight-Face.Metrics().Height.Ceil())/2, 1, bold, c, x)
		l.Blocks = append(l.Blocks, b)
		y += bodyLineHeight
	}
	return y
}

// Wrap breaks s into lines no wider than width pixels, breaking on spaces and
// splitting words that do not fit on a line of their own. Explicit newlines
// are kept.
func Wrap(s string, width int) []string {
	faceMu.Lock()
	defer faceMu.Unlock()
	return wrap(Face, s, width)
}

func wrap(face font.Face, s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			for measure(face, word) > width {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				head, tail := splitAt(face, word, width)
				lines = append(lines, head)
				word = tail
			}
			if word == "" {
				continue
			}
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(face, candidate) > width {
				lines = append(lines, current)
				current = word
			} else {
				current = candidate
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// splitAt returns the longest rune prefix of word that fits width, and the rest.
// At least one rune is always taken.
func splitAt(face font.Face, word string, width int) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && measure(face, string(runes[:n+1])) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func fitLogo(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if h > logoMaxHeight {
		w = w * logoMaxHeight / h
		h = logoMaxHeight
	}
	if w > ContentWidth {
		h = h * ContentWidth / w
		w = ContentWidth
	}
	return w, h
}

// DecodeLogo decodes an embedded "data:image/...;base64," logo
func DecodeLogo(dataURL string) (image.Image, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, ErrExternalLogo
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		raw = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to unescape payload: %w", err)
		}
		raw = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
