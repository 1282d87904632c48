// ABOUTME: Tagged variant for the transcript "content" field (string | block array | object)
// ABOUTME: Mirrors the source's dynamic field with a single Flatten() extractor, per DESIGN NOTES §9
package model

import (
	"encoding/json"
	"strings"
)

// ContentBlock is one element of a content array, e.g. {"type":"text","text":"..."}.
// Non-text block types (tool_use, tool_result, thinking) carry no text and are
// ignored by Flatten.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Content models the transcript's dynamic content field as a tagged variant:
// a plain string, an array of blocks, or an object exposing a .text field.
// Exactly one of the three is populated after UnmarshalJSON.
type Content struct {
	text   string
	blocks []ContentBlock
	isSet  bool
}

// UnmarshalJSON accepts a JSON string, a JSON array of blocks, or a JSON
// object with a "text" field, matching the three shapes the transcript
// format allows for message.content.
func (c *Content) UnmarshalJSON(data []byte) error {
	data = trimLeadingSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.text = s
		c.isSet = true
		return nil
	case '[':
		var blocks []ContentBlock
		if err := json.Unmarshal(data, &blocks); err != nil {
			return err
		}
		c.blocks = blocks
		c.isSet = true
		return nil
	case '{':
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.text = obj.Text
		c.isSet = true
		return nil
	default:
		return nil
	}
}

func trimLeadingSpace(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return b[i:]
}

// Flatten reduces any of the three shapes to a single string, concatenating
// text blocks with a single space and skipping tool_use/tool_result/thinking
// blocks, which carry no renderable text.
func (c Content) Flatten() string {
	if !c.isSet {
		return ""
	}
	if len(c.blocks) == 0 {
		return c.text
	}
	parts := make([]string, 0, len(c.blocks))
	for _, b := range c.blocks {
		switch b.Type {
		case "tool_use", "tool_result", "thinking":
			continue
		default:
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}
