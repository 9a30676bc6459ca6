package models

// TextResult is what a text provider hands back: the model that served the
// call and its raw output, which may be empty.
type TextResult struct {
	Model string
	Text  string
}

// ImageRequest asks a provider for N images. Model and Size are already
// resolved by the caller.
type ImageRequest struct {
	Prompt string
	N      int
	Model  string
	Size   string
}
