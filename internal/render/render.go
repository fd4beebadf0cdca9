package render

// Markdown renders markdown content for terminal display
func Markdown(content string, opts Options) (string, error) {
	r, key, err := borrow(opts)
	if err != nil {
		return "", err
	}
	defer giveBack(key, r)

	return r.Render(content)
}

// MarkdownOrPlain renders content, falling back to the raw text when the
// renderer fails.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return out
}
