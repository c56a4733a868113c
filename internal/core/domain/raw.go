package domain

// RawDocument is an unparsed input file as read from the corpus
// directory, before header parsing.
type RawDocument struct {
	// Path is the corpus-relative path of the file.
	Path string

	// Content is the raw file content.
	Content []byte
}
