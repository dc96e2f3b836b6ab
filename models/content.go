package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Content type tags carried on the wire. The tag travels in plaintext even
// when the payload itself is encrypted, so receivers can filter and display
// record lists without decrypting. The tag leaks only the content kind.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// ClipboardContent is the platform-agnostic payload of one clipboard entry:
// either UTF-8 text or raw encoded image bytes plus pixel dimensions.
// Decoding image bytes into a displayable bitmap is the presentation
// layer's job; this package never touches platform image handles.
//
// A ClipboardContent is immutable once constructed. Use [TextContent] and
// [ImageContent] instead of building the struct by hand.
type ClipboardContent struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Image  []byte `json:"image_data,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// TextContent constructs a text variant.
func TextContent(text string) ClipboardContent {
	return ClipboardContent{Type: ContentTypeText, Text: text}
}

// ImageContent constructs an image variant from encoded image bytes and the
// image's pixel dimensions.
func ImageContent(data []byte, width, height int) ClipboardContent {
	return ClipboardContent{Type: ContentTypeImage, Image: data, Width: width, Height: height}
}

// Validate reports whether the content carries a known type tag.
func (c ClipboardContent) Validate() error {
	switch c.Type {
	case ContentTypeText, ContentTypeImage:
		return nil
	default:
		return fmt.Errorf("unknown content type %q", c.Type)
	}
}

// Preview returns a short single-line description of the content suitable
// for log output and device listings: trimmed, whitespace-collapsed text
// capped at 100 runes, or an "[Image WxH]" placeholder.
func (c ClipboardContent) Preview() string {
	switch c.Type {
	case ContentTypeImage:
		return fmt.Sprintf("[Image %dx%d]", c.Width, c.Height)
	default:
		singleLine := strings.Join(strings.Fields(c.Text), " ")
		runes := []rune(singleLine)
		if len(runes) > 100 {
			return string(runes[:100]) + "..."
		}
		return singleLine
	}
}

// UnmarshalJSON decodes the tagged union and rejects payloads whose type
// tag is missing or unknown, so corrupt records surface as decode errors
// rather than silently producing empty content.
func (c *ClipboardContent) UnmarshalJSON(data []byte) error {
	type alias ClipboardContent
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	restored := ClipboardContent(decoded)
	if err := restored.Validate(); err != nil {
		return err
	}

	*c = restored
	return nil
}
