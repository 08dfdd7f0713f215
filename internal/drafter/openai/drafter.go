// Package openai drafts follow-up emails with the OpenAI Responses API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"gstbill/internal/config"
	"gstbill/internal/port"
)

// Drafter asks the model to rewrite a template follow-up in a given tone.
type Drafter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	schema  map[string]any
}

// NewDrafter creates a Drafter from AI settings.
func NewDrafter(cfg config.AIConfig, opts ...option.RequestOption) (*Drafter, error) {
	schema, err := draftSchema()
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = string(shared.ChatModelGPT4o)
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	return &Drafter{client: &client, model: model, timeout: timeout, schema: schema}, nil
}

func (d *Drafter) DraftFollowUp(ctx context.Context, input port.DraftInput) (*port.EmailDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(d.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(BuildPrompt(input)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "follow_up_email",
					Strict:      param.NewOpt(true),
					Schema:      d.schema,
					Description: param.NewOpt("A follow-up email about a business document"),
				},
			},
		},
	}

	resp, err := d.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}
	return parseDraft(resp.OutputText())
}

// BuildPrompt renders the drafting instructions for input.
func BuildPrompt(input port.DraftInput) string {
	tone := strings.TrimSpace(input.Tone)
	if tone == "" {
		tone = "polite and professional"
	}
	return fmt.Sprintf(`You write short business emails for an Indian small business.
Rewrite the follow-up email below in a %s tone.
Rules:
1. Keep every fact exactly: document type, number, date and amount.
2. Do not invent discounts, deadlines or bank details.
3. Plain text only, no markdown.
4. Sign off as %s.

Document: %s %s dated %s for %s, amount %s.

Subject: %s

%s`, tone, input.CompanyName, input.DocType, input.Number, input.IssueDate,
		input.ClientName, input.Amount, input.Subject, input.Body)
}

func parseDraft(content string) (*port.EmailDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty response content")
	}
	var draft port.EmailDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	if draft.Subject == "" || draft.Body == "" {
		return nil, fmt.Errorf("draft is missing subject or body")
	}
	return &draft, nil
}

func draftSchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(port.EmailDraft{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}

// Compile-time check.
var _ port.EmailDrafter = (*Drafter)(nil)
