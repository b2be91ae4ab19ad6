package source

// Digest is a sha256 content hash. The disk cache keys on it.
type Digest [32]byte

// File is one loaded source file with its normalized content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    Digest
}

// Span returns a span covering the whole file.
func (f *File) Span() Span {
	return Span{File: f.ID, Start: 0, End: uint32(len(f.Content))}
}
