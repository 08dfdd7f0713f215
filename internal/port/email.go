package port

import "context"

// EmailMessage is a single outgoing email.
type EmailMessage struct {
	ToAddress string
	ToName    string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// DraftInput is what an EmailDrafter knows about the document.
type DraftInput struct {
	DocType     string
	Number      string
	ClientName  string
	CompanyName string
	Amount      string
	IssueDate   string
	Tone        string
	Subject     string
	Body        string
}

// EmailDraft is a subject and plain-text body.
type EmailDraft struct {
	Subject string `json:"subject" jsonschema_description:"Email subject line"`
	Body    string `json:"body" jsonschema_description:"Plain text email body, no markdown"`
}

// EmailDrafter rewrites a follow-up email, for example with an LLM.
type EmailDrafter interface {
	DraftFollowUp(ctx context.Context, input DraftInput) (*EmailDraft, error)
}
