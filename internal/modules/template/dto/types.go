package dto

type TemplateInput struct {
	ID           string
	Name         string
	TitlePattern string
	Body         string
}

type TemplateOutput struct {
	ID           string
	Name         string
	TitlePattern string
	Body         string
	BuiltIn      bool
	Variables    []string
}

type CreateNoteInput struct {
	TemplateID   string
	Overrides    map[string]string
	StartSession bool
}

type CreateNoteOutput struct {
	Path           string
	RelPath        string
	Title          string
	SessionStarted bool
	SessionError   string
}
