package entities

// TemplateMode selects the output template.
type TemplateMode int

const (
	// ModeLibrary embeds the runtime library next to the messages.
	ModeLibrary TemplateMode = iota
	// ModeMessagesOnly exposes the data object only.
	ModeMessagesOnly
	// ModeJSON writes a bare JSON document.
	ModeJSON
	// ModeWindowObject assigns the data object to a global.
	ModeWindowObject
)

func (m TemplateMode) String() string {
	switch m {
	case ModeLibrary:
		return "library"
	case ModeMessagesOnly:
		return "no-lib"
	case ModeJSON:
		return "json"
	case ModeWindowObject:
		return "window-object"
	default:
		return "unknown"
	}
}

// Options is the per-invocation output configuration.
type Options struct {
	Source       string // overrides the configured lang path when set
	NoSort       bool
	GroupLocales bool
	NoLib        bool
	JSON         bool
	WindowObject bool
	Compress     bool
}

// Mode resolves the template mode; the first set flag wins in the order
// NoLib, JSON, WindowObject.
func (o Options) Mode() TemplateMode {
	switch {
	case o.NoLib:
		return ModeMessagesOnly
	case o.JSON:
		return ModeJSON
	case o.WindowObject:
		return ModeWindowObject
	default:
		return ModeLibrary
	}
}
