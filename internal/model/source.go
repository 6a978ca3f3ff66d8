package model

// Path represents a file system path.
type Path string

// SourceFile represents a Python source file discovered in the repository.
type SourceFile struct {
	ShortPath Path // relative to the repository root
	FullPath  Path
	Hash      string
}

// Source pairs a discovered file with the dotted module path tests import
// from. The module path is the relative path with separators replaced by
// dots and the .py suffix removed.
type Source struct {
	Origin *SourceFile
	Module string
}
