package merge

// FileVersion is one version of a file participating in a merge. The path
// identifies the file; no I/O happens at this layer.
type FileVersion struct {
	Path    string
	Content string
}

// MergeInput is the caller-supplied input for one merge attempt. Left is the
// current (ours) version; during a merge its content is the working-tree
// document carrying the conflict markers. Right is the incoming (theirs)
// version. A nil Base means 2-way semantics.
type MergeInput struct {
	Left  FileVersion
	Right FileVersion
	Base  *FileVersion
}

// IsThreeWay reports whether a base version is available.
func (in *MergeInput) IsThreeWay() bool {
	return in.Base != nil
}
