package convert

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"cellring/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Pkg is the index of a Wallpaper Engine scene.pkg archive.
type Pkg struct {
	Version string
	Entries []FileEntry

	r         io.ReaderAt
	dataStart int64
}

const maxPkgString = 1 << 16

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("pkg string of %d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkg reads the archive index. File data is read lazily through r.
func ReadPkg(r io.ReaderAt, size int64) (*Pkg, error) {
	sr := io.NewSectionReader(r, 0, size)

	version, err := readPkgString(sr)
	if err != nil {
		return nil, fmt.Errorf("pkg version: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(sr, binary.LittleEndian, &fileCount); err != nil {
		return nil, fmt.Errorf("pkg file count: %w", err)
	}
	utils.Debug("Unpacker: %s with %d files", version, fileCount)

	entries := make([]FileEntry, 0, min(fileCount, 4096))
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(sr)
		if err != nil {
			return nil, fmt.Errorf("pkg entry %d: %w", i, err)
		}
		var pos [2]uint32
		if err := binary.Read(sr, binary.LittleEndian, &pos); err != nil {
			return nil, fmt.Errorf("pkg entry %s: %w", name, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: pos[0], Size: pos[1]})
	}

	dataStart, _ := sr.Seek(0, io.SeekCurrent)
	for _, e := range entries {
		if dataStart+int64(e.Offset)+int64(e.Size) > size {
			return nil, fmt.Errorf("pkg entry %s runs past the end of the archive", e.Name)
		}
	}

	return &Pkg{Version: version, Entries: entries, r: r, dataStart: dataStart}, nil
}

// Open returns a reader over the named entry.
func (p *Pkg) Open(name string) (*io.SectionReader, error) {
	name = strings.TrimPrefix(name, "/")
	for _, e := range p.Entries {
		if e.Name == name {
			return io.NewSectionReader(p.r, p.dataStart+int64(e.Offset), int64(e.Size)), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
}

// splitPkgPath splits "scene.pkg:materials/a.tex" into the archive path and
// the entry name.
func splitPkgPath(path string) (string, string, bool) {
	i := strings.Index(path, ".pkg:")
	if i < 0 {
		return "", "", false
	}
	return path[:i+4], path[i+5:], true
}

// readPkgEntry loads one entry of an archive into memory.
func readPkgEntry(pkgPath, name string) ([]byte, error) {
	f, err := os.Open(pkgPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pkg, err := ReadPkg(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pkgPath, err)
	}
	entry, err := pkg.Open(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(entry); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
