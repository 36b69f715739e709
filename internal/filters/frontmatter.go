package filters

import (
	"bytes"
	"context"
)

var frontMatterDelim = []byte("---")

// FrontMatterFilter strips a leading YAML front-matter block so the
// attribute header does not leak into compiled output.
type FrontMatterFilter struct{}

// Name returns the registry name.
func (f *FrontMatterFilter) Name() string { return "frontmatter" }

// Apply removes the front-matter block, if present. Content without a
// front-matter block passes through unchanged.
func (f *FrontMatterFilter) Apply(_ context.Context, content []byte) ([]byte, error) {
	body, _ := SplitFrontMatter(content)
	return body, nil
}

// SplitFrontMatter separates content into body and raw front-matter
// bytes. The front matter is a block delimited by "---" lines at the very
// start of the content; when absent, the whole content is the body.
func SplitFrontMatter(content []byte) (body, frontMatter []byte) {
	rest, ok := cutDelimLine(content)
	if !ok {
		return content, nil
	}

	for offset := 0; offset <= len(rest); {
		lineEnd := bytes.IndexByte(rest[offset:], '\n')
		if lineEnd < 0 {
			// Unterminated block: treat the whole content as body.
			return content, nil
		}
		line := rest[offset : offset+lineEnd]
		if bytes.Equal(bytes.TrimRight(line, "\r"), frontMatterDelim) {
			return rest[offset+lineEnd+1:], rest[:offset]
		}
		offset += lineEnd + 1
	}
	return content, nil
}

// cutDelimLine strips a leading "---" line, reporting whether it was
// there.
func cutDelimLine(content []byte) ([]byte, bool) {
	lineEnd := bytes.IndexByte(content, '\n')
	if lineEnd < 0 {
		return content, false
	}
	line := bytes.TrimRight(content[:lineEnd], "\r")
	if !bytes.Equal(line, frontMatterDelim) {
		return content, false
	}
	return content[lineEnd+1:], true
}
