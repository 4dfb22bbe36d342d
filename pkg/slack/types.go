package slack

// TextObject is a Block Kit text object (plain_text or mrkdwn).
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Option is one selectable entry of a static_select element.
type Option struct {
	Text  TextObject `json:"text"`
	Value string     `json:"value"`
}

// BlockElement is an interactive element inside a block (button, input,
// static_select).
type BlockElement struct {
	Type         string      `json:"type"`
	ActionID     string      `json:"action_id,omitempty"`
	Text         *TextObject `json:"text,omitempty"`
	Value        string      `json:"value,omitempty"`
	InitialValue string      `json:"initial_value,omitempty"`
	Multiline    bool        `json:"multiline,omitempty"`
	Placeholder  *TextObject `json:"placeholder,omitempty"`
	Options      []Option    `json:"options,omitempty"`
}

// Block is one Block Kit layout block.
type Block struct {
	Type     string         `json:"type"`
	BlockID  string         `json:"block_id,omitempty"`
	Text     *TextObject    `json:"text,omitempty"`
	Label    *TextObject    `json:"label,omitempty"`
	Element  *BlockElement  `json:"element,omitempty"`
	Elements []BlockElement `json:"elements,omitempty"`
}

// View is a modal definition for views.open.
type View struct {
	Type            string      `json:"type"`
	CallbackID      string      `json:"callback_id,omitempty"`
	Title           *TextObject `json:"title,omitempty"`
	Submit          *TextObject `json:"submit,omitempty"`
	Close           *TextObject `json:"close,omitempty"`
	PrivateMetadata string      `json:"private_metadata,omitempty"`
	Blocks          []Block     `json:"blocks"`
}

// Attachment wraps blocks with a color bar.
type Attachment struct {
	Color  string  `json:"color,omitempty"`
	Blocks []Block `json:"blocks,omitempty"`
}

// PostMessageRequest is the payload for chat.postMessage.
type PostMessageRequest struct {
	Channel     string       `json:"channel"`
	Text        string       `json:"text"`
	Blocks      []Block      `json:"blocks,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// openViewRequest is the payload for views.open.
type openViewRequest struct {
	TriggerID string `json:"trigger_id"`
	View      View   `json:"view"`
}

// APIResponse is the generic Slack Web API response wrapper.
type APIResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// User identifies the Slack user behind an interaction.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Action is one triggered action inside a block_actions payload.
type Action struct {
	ActionID string `json:"action_id"`
	Value    string `json:"value,omitempty"`
}

// ViewStateValue is a single submitted input value. Plain inputs carry
// Value; static selects carry SelectedOption.
type ViewStateValue struct {
	Value          string  `json:"value,omitempty"`
	SelectedOption *Option `json:"selected_option,omitempty"`
}

// ViewState holds submitted form values keyed by block id, then action id.
type ViewState struct {
	Values map[string]map[string]ViewStateValue `json:"values"`
}

// ViewPayload is the view section of a view_submission payload.
type ViewPayload struct {
	CallbackID      string    `json:"callback_id,omitempty"`
	PrivateMetadata string    `json:"private_metadata,omitempty"`
	State           ViewState `json:"state"`
}

// InteractionPayload is the JSON wrapped inside the form-encoded "payload"
// field of an interactivity callback. Type discriminates the event.
type InteractionPayload struct {
	Type      string       `json:"type"`
	TriggerID string       `json:"trigger_id,omitempty"`
	User      User         `json:"user"`
	Actions   []Action     `json:"actions,omitempty"`
	View      *ViewPayload `json:"view,omitempty"`
}
