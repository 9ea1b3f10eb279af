package scanner

import (
	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/pkg/utils"
)

// DuplicatePair links two files with identical content.
// Duplicate is the one offered for deletion.
type DuplicatePair struct {
	Original  string
	Duplicate string
	Hash      string
	Size      int64
}

// DuplicateResult represents the result of a duplicate scan
type DuplicateResult struct {
	Pairs       []DuplicatePair
	FilesHashed int
	Skipped     []string
	Errors      []*fileops.OpError
}

// TotalSize returns the bytes that deleting every duplicate would free
func (r *DuplicateResult) TotalSize() int64 {
	sizes := make([]int64, len(r.Pairs))
	for i, p := range r.Pairs {
		sizes[i] = p.Size
	}
	return utils.SumSizes(sizes)
}
