package prompt

import "encoding/json"

// Message is one entry in the outbound payload for a chat-completions
// call. It exists only for the duration of a single inference request;
// stored transcripts never hold the multipart form.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is a tagged variant: plain text when Parts is nil, otherwise a
// multipart body. It marshals to the OpenAI wire shape — a bare JSON
// string, or an array of typed parts.
type Content struct {
	Text  string
	Parts []Part
}

// PlainText wraps s as a plain-text content value.
func PlainText(s string) Content {
	return Content{Text: s}
}

// MultiPart wraps parts as a multipart content value.
func MultiPart(parts []Part) Content {
	return Content{Parts: parts}
}

// IsMultiPart reports whether the content carries a multipart body.
func (c Content) IsMultiPart() bool {
	return c.Parts != nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Parts == nil {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Parts)
}

// Part is one element of a multipart content body.
type Part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL holds a validated absolute HTTP(S) image reference.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Type: "text", Text: text}
}

// ImagePart builds an image-reference part.
func ImagePart(url string) Part {
	return Part{Type: "image_url", ImageURL: &ImageURL{URL: url}}
}
