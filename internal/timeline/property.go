package timeline

import (
	"fmt"

	"github.com/google/uuid"
)

// UpdateItemProperty sets one mutable field on an item. The property set
// is closed per variant; unknown names and out-of-range values are
// rejected, never clamped. VideoClips expose no mutable properties.
func (p *Project) UpdateItemProperty(itemID uuid.UUID, name string, value any) error {
	item, _, _, ok := p.FindItem(itemID)
	if !ok {
		return &NotFoundError{Kind: "item", ID: itemID}
	}

	switch it := item.(type) {
	case *VideoClip:
		return &ValidationError{Reason: fmt.Sprintf("video clips have no property %q", name)}

	case *AudioClip:
		switch name {
		case "volume":
			v, err := asFloat(name, value)
			if err != nil {
				return err
			}
			if v < 0 || v > 2 {
				return &InvalidRangeError{Field: "volume", Value: v}
			}
			it.Volume = v
		default:
			return &ValidationError{Reason: fmt.Sprintf("audio clips have no property %q", name)}
		}

	case *ImageOverlay:
		switch name {
		case "x":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			it.X = v
		case "y":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			it.Y = v
		case "width":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			if v <= 0 {
				return &InvalidRangeError{Field: "width", Value: v}
			}
			it.Width = v
		case "height":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			if v <= 0 {
				return &InvalidRangeError{Field: "height", Value: v}
			}
			it.Height = v
		case "opacity":
			v, err := asFloat(name, value)
			if err != nil {
				return err
			}
			if v < 0 || v > 1 {
				return &InvalidRangeError{Field: "opacity", Value: v}
			}
			it.Opacity = v
		default:
			return &ValidationError{Reason: fmt.Sprintf("image overlays have no property %q", name)}
		}

	case *TextOverlay:
		switch name {
		case "text":
			v, err := asString(name, value)
			if err != nil {
				return err
			}
			it.Text = v
		case "font_size":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			if v <= 0 {
				return &InvalidRangeError{Field: "font_size", Value: v}
			}
			it.FontSize = v
		case "color":
			v, err := asString(name, value)
			if err != nil {
				return err
			}
			it.Color = v
		case "x":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			it.X = v
		case "y":
			v, err := asInt(name, value)
			if err != nil {
				return err
			}
			it.Y = v
		default:
			return &ValidationError{Reason: fmt.Sprintf("text overlays have no property %q", name)}
		}
	}

	return nil
}

func asFloat(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &InvalidRangeError{Field: field, Value: v}
	}
}

func asInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		// JSON decoders hand over numbers as float64; accept whole values.
		if n != float64(int(n)) {
			return 0, &InvalidRangeError{Field: field, Value: v}
		}
		return int(n), nil
	default:
		return 0, &InvalidRangeError{Field: field, Value: v}
	}
}

func asString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &InvalidRangeError{Field: field, Value: v}
	}
	return s, nil
}
