package dto

type DescriptorOutput struct {
	ID          string
	Title       string
	Description string
}

type ResultOutput struct {
	CommandID  string
	Message    string
	OutputJSON string
}

type PluginInput struct {
	Binary    string
	SHA256    string
	CommandID string
}
