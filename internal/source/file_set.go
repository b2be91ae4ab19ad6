package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages the loaded source files and resolves spans to positions.
type FileSet struct {
	files []File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores normalized content under path and returns a fresh FileID.
func (fs *FileSet) Add(path string, content []byte) FileID {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)

	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    filepath.ToSlash(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
	})
	fs.index[filepath.ToSlash(path)] = id
	return id
}

// Load reads path from disk and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.Add(path, content), nil
}

// Get returns the file for id, or nil if the id is out of range.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// ByPath returns the file previously added under path.
func (fs *FileSet) ByPath(path string) (*File, bool) {
	id, ok := fs.index[filepath.ToSlash(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Position resolves the start of span to a path:line:col position.
// Unknown files resolve to line 0, col 0.
func (fs *FileSet) Position(span Span) Position {
	f := fs.Get(span.File)
	if f == nil {
		return Position{}
	}
	lc := toLineCol(f.LineIdx, span.Start)
	return Position{Path: f.Path, Line: lc.Line, Col: lc.Col}
}

// Line returns the full source line (without the trailing newline) that
// contains byte offset off in file id.
func (fs *FileSet) Line(id FileID, off uint32) string {
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	if off > uint32(len(f.Content)) {
		off = uint32(len(f.Content))
	}
	start := off
	for start > 0 && f.Content[start-1] != '\n' {
		start--
	}
	end := off
	for end < uint32(len(f.Content)) && f.Content[end] != '\n' {
		end++
	}
	return string(f.Content[start:end])
}
