package swkit

import (
	"context"
	"encoding/json"
)

// DefaultTag is the dedup key substituted when a push payload carries no
// tag. Same-tag notifications coalesce into one visible entry, so pushes
// without explicit tags replace one another rather than stack.
const DefaultTag = "default"

// DefaultVibration is attached to every rendered notification.
var DefaultVibration = []int{200, 100, 200}

// Data is the arbitrary bag a push payload may carry. URL and Priority are
// lifted out because the worker acts on them (click routing and the
// urgent flag); everything else lands in Extra untouched.
type Data struct {
	URL      string
	Priority string
	Extra    map[string]any
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if v, ok := m["url"].(string); ok {
		d.URL = v
		delete(m, "url")
	}
	if v, ok := m["priority"].(string); ok {
		d.Priority = v
		delete(m, "priority")
	}
	if len(m) > 0 {
		d.Extra = m
	}
	return nil
}

func (d Data) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extra)+2)
	for k, v := range d.Extra {
		m[k] = v
	}
	if d.URL != "" {
		m["url"] = d.URL
	}
	if d.Priority != "" {
		m["priority"] = d.Priority
	}
	return json.Marshal(m)
}

// Action is one button on a rendered notification.
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// Payload is a normalized push payload: every field is populated, either
// from the inbound data or from the worker defaults.
type Payload struct {
	Title   string
	Body    string
	Icon    string
	Badge   string
	Tag     string
	Data    Data
	Actions []Action
}

// RenderOptions is what the OS notification surface receives alongside the
// title.
type RenderOptions struct {
	Body               string
	Icon               string
	Badge              string
	Tag                string
	Data               Data
	Vibrate            []int
	RequireInteraction bool
	Actions            []Action
}

// Renderer is the OS notification surface. Show replaces any visible
// notification sharing opts.Tag (at-most-one visible notification per
// tag); Close dismisses by tag and is a no-op for unknown tags.
type Renderer interface {
	Show(ctx context.Context, title string, opts RenderOptions) error
	Close(ctx context.Context, tag string) error
}

// rawPayload mirrors the push delivery shape. Pointer fields distinguish
// absent from empty so the merge only overrides what the sender supplied.
type rawPayload struct {
	Title   *string  `json:"title"`
	Body    *string  `json:"body"`
	Icon    *string  `json:"icon"`
	Badge   *string  `json:"badge"`
	Tag     *string  `json:"tag"`
	Data    *Data    `json:"data"`
	Actions []Action `json:"actions"`
}

// normalize turns untrusted push bytes into a fully populated Payload.
// It never fails: an empty event or an undecodable payload yields the
// defaults (fail-soft - a malformed payload must not suppress the
// notification), and decoded fields win over defaults field by field.
func (w *Worker) normalize(raw []byte) Payload {
	p := w.defaults
	if len(raw) == 0 {
		return p
	}

	var in rawPayload
	if err := json.Unmarshal(raw, &in); err != nil {
		w.hooks.PayloadDecodeError(err)
		w.log.Warn("push payload decode failed, using defaults", Fields{"err": err})
		return p
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Body != nil {
		p.Body = *in.Body
	}
	if in.Icon != nil {
		p.Icon = *in.Icon
	}
	if in.Badge != nil {
		p.Badge = *in.Badge
	}
	if in.Tag != nil {
		p.Tag = *in.Tag
	}
	if in.Data != nil {
		p.Data = *in.Data
	}
	if in.Actions != nil {
		p.Actions = in.Actions
	}
	return p
}

// renderOptions derives the OS options from a normalized payload.
// RequireInteraction is set only for data.priority == "urgent"; any other
// value - or none - renders a dismissable notification.
func renderOptions(p Payload) RenderOptions {
	actions := p.Actions
	if actions == nil {
		actions = []Action{}
	}
	return RenderOptions{
		Body:               p.Body,
		Icon:               p.Icon,
		Badge:              p.Badge,
		Tag:                p.Tag,
		Data:               p.Data,
		Vibrate:            DefaultVibration,
		RequireInteraction: p.Data.Priority == "urgent",
		Actions:            actions,
	}
}

// HandlePush decodes, normalizes and renders an inbound push event.
// Decode errors never escape this boundary; the only error returned is a
// renderer failure, so the event stays alive until rendering resolves.
func (w *Worker) HandlePush(ctx context.Context, raw []byte) error {
	p := w.normalize(raw)
	return w.renderer.Show(ctx, p.Title, renderOptions(p))
}
