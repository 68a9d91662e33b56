package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Wire discriminators for the item union.
const (
	typeVideoClip    = "video_clip"
	typeAudioClip    = "audio_clip"
	typeImageOverlay = "image_overlay"
	typeTextOverlay  = "text_overlay"
)

// MarshalItem encodes an item as a tagged JSON object with a "type"
// discriminator alongside the variant fields.
func MarshalItem(item Item) ([]byte, error) {
	var tag string
	switch item.(type) {
	case *VideoClip:
		tag = typeVideoClip
	case *AudioClip:
		tag = typeAudioClip
	case *ImageOverlay:
		tag = typeImageOverlay
	case *TextOverlay:
		tag = typeTextOverlay
	default:
		return nil, fmt.Errorf("marshal item: unknown variant %T", item)
	}

	fields, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	m["type"] = json.RawMessage(fmt.Sprintf("%q", tag))
	return json.Marshal(m)
}

// UnmarshalItem decodes a tagged item object into the matching variant.
func UnmarshalItem(data []byte) (Item, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}

	var item Item
	switch probe.Type {
	case typeVideoClip:
		item = &VideoClip{}
	case typeAudioClip:
		item = &AudioClip{}
	case typeImageOverlay:
		item = &ImageOverlay{}
	case typeTextOverlay:
		item = &TextOverlay{}
	default:
		return nil, fmt.Errorf("unmarshal item: unknown type %q", probe.Type)
	}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("unmarshal item %s: %w", probe.Type, err)
	}
	return item, nil
}

// MarshalJSON implements json.Marshaler so tracks round-trip their item
// union through encoding/json.
func (t Track) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(t.Items))
	for i, item := range t.Items {
		data, err := MarshalItem(item)
		if err != nil {
			return nil, err
		}
		items[i] = data
	}
	return json.Marshal(struct {
		ID    uuid.UUID         `json:"id"`
		Kind  TrackKind         `json:"kind"`
		Items []json.RawMessage `json:"items"`
	}{
		ID:    t.ID,
		Kind:  t.Kind,
		Items: items,
	})
}

// UnmarshalJSON implements json.Unmarshaler for the item union.
func (t *Track) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    uuid.UUID         `json:"id"`
		Kind  TrackKind         `json:"kind"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal track: %w", err)
	}
	t.ID = raw.ID
	t.Kind = raw.Kind
	t.Items = make([]Item, len(raw.Items))
	for i, itemData := range raw.Items {
		item, err := UnmarshalItem(itemData)
		if err != nil {
			return err
		}
		t.Items[i] = item
	}
	return nil
}
