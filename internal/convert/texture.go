package convert

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cellring/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

var ErrUnsupportedTexture = errors.New("unsupported texture")

// texture formats as stored in the TEXI header
const (
	formatRG88 = 8
	formatR8   = 9
)

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) u32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// tag reads a NUL terminated 8 byte magic.
func (t *texReader) tag() string {
	b := make([]byte, 9)
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b)
	}
	return string(bytes.TrimRight(b, "\x00"))
}

type texHeader struct {
	Format        uint32
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	Container     string
	ImageCount    uint32
}

func readTexHeader(t *texReader) (texHeader, error) {
	var h texHeader
	if magic := t.tag(); t.err == nil && magic != "TEXV0005" {
		return h, fmt.Errorf("%w: magic %q", ErrUnsupportedTexture, magic)
	}
	t.tag() // TEXI0001

	h.Format = t.u32()
	t.u32() // flags
	h.TextureWidth = t.u32()
	h.TextureHeight = t.u32()
	h.ImageWidth = t.u32()
	h.ImageHeight = t.u32()
	t.u32()

	h.Container = t.tag()
	h.ImageCount = t.u32()
	if h.Container == "TEXB0003" {
		t.u32() // free image format
	}
	return h, t.err
}

// DecodeTex decodes the first mipmap of the first image in a Wallpaper
// Engine texture, cropped to the image size.
func DecodeTex(r io.Reader) (image.Image, error) {
	t := &texReader{r: bufio.NewReader(r)}
	h, err := readTexHeader(t)
	if err != nil {
		return nil, err
	}
	if h.ImageCount == 0 {
		return nil, fmt.Errorf("%w: no images", ErrUnsupportedTexture)
	}

	mipmaps := t.u32()
	if t.err == nil && mipmaps == 0 {
		return nil, fmt.Errorf("%w: no mipmaps", ErrUnsupportedTexture)
	}

	w, ht := t.u32(), t.u32()
	var compressed bool
	var rawSize uint32
	if h.Container != "TEXB0001" {
		compressed = t.u32() == 1
		rawSize = t.u32()
	}
	size := t.u32()
	if t.err != nil {
		return nil, t.err
	}
	if w == 0 || ht == 0 || w > 1<<14 || ht > 1<<14 {
		return nil, fmt.Errorf("%w: mipmap %dx%d", ErrUnsupportedTexture, w, ht)
	}

	maxRaw := uint64(w) * uint64(ht) * 4
	if compressed {
		if uint64(rawSize) > maxRaw || size > uint32(lz4.CompressBlockBound(int(rawSize))) {
			return nil, fmt.Errorf("%w: lz4 block %d -> %d for %dx%d", ErrUnsupportedTexture, size, rawSize, w, ht)
		}
	} else if uint64(size) > maxRaw {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrUnsupportedTexture, size, w, ht)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(t.r, data); err != nil {
		return nil, err
	}

	if compressed {
		utils.Debug("Decompressing LZ4: %d -> %d", size, rawSize)
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, raw)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = raw[:n]
	}

	pix, err := decodePixels(h.Format, data, w, ht)
	if err != nil {
		return nil, err
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: int(w) * 4,
		Rect:   image.Rect(0, 0, int(w), int(ht)),
	}

	cropW, cropH := int(h.ImageWidth), int(h.ImageHeight)
	if cropW <= 0 || cropW > int(w) {
		cropW = int(w)
	}
	if cropH <= 0 || cropH > int(ht) {
		cropH = int(ht)
	}
	return img.SubImage(image.Rect(0, 0, cropW, cropH)), nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	pixels := w * h
	n := uint32(len(data))

	switch {
	case format == formatR8 && n == pixels:
		pix := make([]byte, pixels*4)
		for i, v := range data {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
		}
		return pix, nil
	case format == formatRG88 && n == pixels*2:
		pix := make([]byte, pixels*4)
		for i := uint32(0); i < pixels; i++ {
			l, a := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = l, l, l, a
		}
		return pix, nil
	case n == pixels*4:
		return data, nil
	// block formats are told apart by size, the format id is not reliable
	case n == blocks*16:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case n == blocks*8:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	}
	return nil, fmt.Errorf("%w: format %d with %d bytes for %dx%d", ErrUnsupportedTexture, format, n, w, h)
}

// LoadImage reads a .tex texture or any registered image format (png,
// jpeg). A path of the form "scene.pkg:materials/a.tex" reads the entry
// from a scene archive.
func LoadImage(path string) (image.Image, error) {
	if pkgPath, name, ok := splitPkgPath(path); ok {
		data, err := readPkgEntry(pkgPath, name)
		if err != nil {
			return nil, err
		}
		return decodeImage(name, bytes.NewReader(data))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeImage(path, f)
}

func decodeImage(name string, r io.Reader) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tex") {
		img, err := DecodeTex(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// DecodeToPNG writes the image of a .tex texture to outPath as PNG.
func DecodeToPNG(texPath, outPath string) error {
	img, err := LoadImage(texPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(outPath)
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return f.Close()
}
