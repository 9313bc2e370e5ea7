package convert

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"

	"cellring/internal/engine2D/sprite"
	"cellring/internal/utils"

	"github.com/pierrec/lz4/v4"
)

const (
	snapshotMagic = "CRATLAS1"

	maxSnapshotTile  = 4096
	maxSnapshotWidth = 1 << 14
)

type snapshotHeader struct {
	Magic     [8]byte
	TileSize  uint32
	Variants  uint32
	Width     uint32
	Height    uint32
	RawSize   uint32
	BlockSize uint32 // 0 when the pixels are stored uncompressed
}

// WriteAtlasSnapshot stores the atlas strip as one LZ4 block behind a
// fixed header.
func WriteAtlasSnapshot(w io.Writer, a *sprite.Atlas) error {
	if a == nil || a.Image == nil {
		return fmt.Errorf("%w: nil atlas", sprite.ErrInvalidAtlas)
	}

	pix := packPixels(a.Image)
	block := make([]byte, lz4.CompressBlockBound(len(pix)))
	n, err := lz4.CompressBlock(pix, block, nil)
	if err != nil {
		return fmt.Errorf("lz4: %w", err)
	}

	bounds := a.Image.Bounds()
	h := snapshotHeader{
		TileSize: uint32(a.TileSize),
		Variants: uint32(a.Variants),
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		RawSize:  uint32(len(pix)),
	}
	copy(h.Magic[:], snapshotMagic)

	payload := pix
	if n > 0 && n < len(pix) {
		h.BlockSize = uint32(n)
		payload = block[:n]
	}

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// ReadAtlasSnapshot loads an atlas written by WriteAtlasSnapshot.
func ReadAtlasSnapshot(r io.Reader) (*sprite.Atlas, error) {
	var h snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(h.Magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", sprite.ErrInvalidAtlas, h.Magic[:])
	}
	tile, variants := uint64(h.TileSize), uint64(h.Variants)
	width, height := uint64(h.Width), uint64(h.Height)
	if tile == 0 || tile > maxSnapshotTile || variants == 0 ||
		width > maxSnapshotWidth || width != tile*variants*2 || height != tile ||
		uint64(h.RawSize) != width*height*4 {
		return nil, fmt.Errorf("%w: %d tiles of %dpx in %dx%d", sprite.ErrInvalidAtlas, variants*2, tile, width, height)
	}
	if h.BlockSize > uint32(lz4.CompressBlockBound(int(h.RawSize))) {
		return nil, fmt.Errorf("%w: lz4 block of %d bytes", sprite.ErrInvalidAtlas, h.BlockSize)
	}

	pix := make([]byte, h.RawSize)
	if h.BlockSize == 0 {
		if _, err := io.ReadFull(r, pix); err != nil {
			return nil, err
		}
	} else {
		block := make([]byte, h.BlockSize)
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, err
		}
		n, err := lz4.UncompressBlock(block, pix)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if n != len(pix) {
			return nil, fmt.Errorf("%w: short pixel data %d/%d", sprite.ErrInvalidAtlas, n, len(pix))
		}
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: int(h.Width) * 4,
		Rect:   image.Rect(0, 0, int(h.Width), int(h.Height)),
	}
	return &sprite.Atlas{Image: img, TileSize: int(h.TileSize), Variants: int(h.Variants)}, nil
}

func SaveAtlasSnapshot(path string, a *sprite.Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := WriteAtlasSnapshot(w, a); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	utils.Debug("Saved atlas snapshot: %s", path)
	return f.Close()
}

func LoadAtlasSnapshot(path string) (*sprite.Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := ReadAtlasSnapshot(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// packPixels returns the image rows without stride padding.
func packPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen && b.Min == (image.Point{}) {
		return img.Pix[:rowLen*b.Dy()]
	}
	pix := make([]byte, 0, rowLen*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[off:off+rowLen]...)
	}
	return pix
}
