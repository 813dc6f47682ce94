package llms

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// MessageJSON is a serializable representation of a Message, used when chat
// history is persisted to an external store.
type MessageJSON struct {
	Role  Role              `json:"role"`
	Parts []ContentPartJSON `json:"parts"`
}

// ContentPartJSON is a tagged union of the supported content parts.
type ContentPartJSON struct {
	Type         string            `json:"type"`
	Text         string            `json:"text,omitempty"`
	ToolCall     *ToolCall         `json:"tool_call,omitempty"`
	ToolResponse *ToolCallResponse `json:"tool_response,omitempty"`
}

const (
	partTypeText         = "text"
	partTypeToolCall     = "tool_call"
	partTypeToolResponse = "tool_response"
)

// ToJSON converts the message to its serializable form.
func (m Message) ToJSON() MessageJSON {
	out := MessageJSON{
		Role:  m.Role,
		Parts: make([]ContentPartJSON, 0, len(m.Parts)),
	}
	for _, part := range m.Parts {
		switch p := part.(type) {
		case TextContent:
			out.Parts = append(out.Parts, ContentPartJSON{Type: partTypeText, Text: p.Text})
		case ToolCall:
			tc := p
			out.Parts = append(out.Parts, ContentPartJSON{Type: partTypeToolCall, ToolCall: &tc})
		case ToolCallResponse:
			tr := p
			out.Parts = append(out.Parts, ContentPartJSON{Type: partTypeToolResponse, ToolResponse: &tr})
		}
	}
	return out
}

// FromJSON converts the serializable form back to a Message.
func (m MessageJSON) FromJSON() (Message, error) {
	out := Message{
		Role:  m.Role,
		Parts: make([]ContentPart, 0, len(m.Parts)),
	}
	for _, part := range m.Parts {
		switch part.Type {
		case partTypeText:
			out.Parts = append(out.Parts, TextContent{Text: part.Text})
		case partTypeToolCall:
			if part.ToolCall == nil {
				return out, errors.New("tool_call part without payload")
			}
			out.Parts = append(out.Parts, *part.ToolCall)
		case partTypeToolResponse:
			if part.ToolResponse == nil {
				return out, errors.New("tool_response part without payload")
			}
			out.Parts = append(out.Parts, *part.ToolResponse)
		default:
			return out, errors.Newf("unknown content part type %q", part.Type)
		}
	}
	return out, nil
}

// MarshalMessage encodes a Message to JSON.
func MarshalMessage(m Message) ([]byte, error) {
	bs, err := json.Marshal(m.ToJSON())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}
	return bs, nil
}

// UnmarshalMessage decodes a Message from JSON.
func UnmarshalMessage(bs []byte) (Message, error) {
	var mj MessageJSON
	if err := json.Unmarshal(bs, &mj); err != nil {
		return Message{}, errors.Wrap(err, "failed to unmarshal message")
	}
	return mj.FromJSON()
}
