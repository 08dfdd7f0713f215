package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/money"
	"gstbill/internal/port"
)

const valuedClient = "Valued Client"

// FollowUpEmail is a ready-to-send follow-up about one document.
type FollowUpEmail struct {
	To        string `json:"to"`
	ToName    string `json:"to_name"`
	ToAddress string `json:"to_address"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailto_url,omitempty"`
	Drafted   bool   `json:"drafted"`
}

// SendEmailInput optionally overrides the composed subject and body.
type SendEmailInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailService composes, drafts and sends document follow-ups.
type EmailService interface {
	Compose(ctx context.Context, userID, docID uuid.UUID) (*FollowUpEmail, error)
	Draft(ctx context.Context, userID, docID uuid.UUID, tone string) (*FollowUpEmail, error)
	Send(ctx context.Context, userID, docID uuid.UUID, input SendEmailInput) (*FollowUpEmail, error)
}

type emailService struct {
	docRepo port.DocumentRepository
	sender  port.EmailSender
	drafter port.EmailDrafter
}

// NewEmailService creates an EmailService. drafter may be nil, in which case
// drafts are the plain template.
func NewEmailService(docRepo port.DocumentRepository, sender port.EmailSender, drafter port.EmailDrafter) EmailService {
	return &emailService{
		docRepo: docRepo,
		sender:  sender,
		drafter: drafter,
	}
}

func (s *emailService) Compose(ctx context.Context, userID, docID uuid.UUID) (*FollowUpEmail, error) {
	doc, err := s.load(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	email := ComposeFollowUp(doc)
	return &email, nil
}

func (s *emailService) Draft(ctx context.Context, userID, docID uuid.UUID, tone string) (*FollowUpEmail, error) {
	doc, err := s.load(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	email := ComposeFollowUp(doc)
	if s.drafter == nil {
		return &email, nil
	}

	draft, err := s.drafter.DraftFollowUp(ctx, port.DraftInput{
		DocType:     string(doc.DocType),
		Number:      doc.Details.Number,
		ClientName:  email.ToName,
		CompanyName: doc.Company.Name,
		Amount:      followUpAmount(doc),
		IssueDate:   doc.Details.IssueDate,
		Tone:        tone,
		Subject:     email.Subject,
		Body:        email.Body,
	})
	if err != nil {
		log.Printf("emailService.Draft: doc %s: using template: %v", docID, err)
		return &email, nil
	}

	email.Subject = draft.Subject
	email.Body = draft.Body
	email.MailtoURL = mailtoURL(email.ToAddress, email.Subject, email.Body)
	email.Drafted = true
	return &email, nil
}

func (s *emailService) Send(ctx context.Context, userID, docID uuid.UUID, input SendEmailInput) (*FollowUpEmail, error) {
	doc, err := s.load(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	email := ComposeFollowUp(doc)
	if email.ToAddress == "" {
		return nil, domain.ErrEmailRecipientMissing
	}
	if strings.TrimSpace(input.Subject) != "" {
		email.Subject = strings.TrimSpace(input.Subject)
	}
	if strings.TrimSpace(input.Body) != "" {
		email.Body = input.Body
	}

	err = s.sender.Send(ctx, port.EmailMessage{
		ToAddress: email.ToAddress,
		ToName:    email.ToName,
		Subject:   email.Subject,
		TextBody:  email.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("emailService.Send: %w", err)
	}
	log.Printf("emailService.Send: follow-up for %s %s sent to %s", doc.DocType, doc.Details.Number, email.ToAddress)
	return &email, nil
}

func (s *emailService) load(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.docRepo.GetByID(ctx, userID, docID)
}

// ComposeFollowUp renders the template follow-up for doc.
func ComposeFollowUp(doc *domain.Document) FollowUpEmail {
	name := strings.TrimSpace(doc.Client.Name)
	address := strings.TrimSpace(doc.Client.Email)
	greeting := name
	if greeting == "" {
		greeting = valuedClient
	}

	to := greeting
	if address != "" && name != "" {
		to = fmt.Sprintf("%s <%s>", name, address)
	} else if address != "" {
		to = address
	}

	ref := fmt.Sprintf("%s #%s", doc.DocType, strings.TrimPrefix(doc.Details.Number, "#"))
	subject := "Follow-up on " + ref

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", greeting)
	b.WriteString("I hope this email finds you well.\n\n")
	fmt.Fprintf(&b, "I wanted to follow up regarding %s for the amount of %s that we sent to you recently.\n\n",
		ref, followUpAmount(doc))
	b.WriteString(typeParagraph(doc.DocType))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Please feel free to reach out if you have any questions or need any clarification regarding this %s.\n\n",
		strings.ToLower(string(doc.DocType)))
	b.WriteString("Thank you for your business and we look forward to hearing from you soon.\n\n")
	b.WriteString("Best regards,\n")
	b.WriteString(signature(doc.Company))

	body := b.String()
	return FollowUpEmail{
		To:        to,
		ToName:    name,
		ToAddress: address,
		Subject:   subject,
		Body:      body,
		MailtoURL: mailtoURL(address, subject, body),
	}
}

func typeParagraph(t domain.DocumentType) string {
	switch t {
	case domain.DocTypeQuotation:
		return "We would appreciate your feedback on our quotation and look forward to the opportunity to work with you."
	case domain.DocTypeInvoice:
		return "We kindly request you to process the payment at your earliest convenience."
	default:
		return "We would like to confirm the delivery schedule and ensure all requirements are met."
	}
}

func signature(c domain.CompanyInfo) string {
	lines := []string{c.Name}
	if c.Phone != "" {
		lines = append(lines, "Phone: "+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "Email: "+c.Email)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func followUpAmount(doc *domain.Document) string {
	return "₹" + money.Format(doc.Totals.GrandTotal)
}

func mailtoURL(address, subject, body string) string {
	if address == "" {
		return ""
	}
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	return "mailto:" + address + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
