// Package model defines the data structures shared by the scanner, the rules
// and the outer layers of halint.
package model

// Path represents a file system path.
type Path string

// File represents a source file picked up for linting.
type File struct {
	Path Path
	Hash string
}
