package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/port"
)

func TestDraftSchema(t *testing.T) {
	schema, err := draftSchema()
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "subject")
	assert.Contains(t, props, "body")
	assert.ElementsMatch(t, []any{"subject", "body"}, schema["required"])
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(port.DraftInput{
		DocType: "Invoice", Number: "#3/2024", IssueDate: "2024-05-01",
		ClientName: "Acme", CompanyName: "Lakshmi Traders", Amount: "₹1180.00",
		Subject: "Follow-up on Invoice ##3/2024", Body: "Dear Acme,",
	})

	assert.Contains(t, p, "polite and professional tone")
	assert.Contains(t, p, "Invoice #3/2024 dated 2024-05-01 for Acme, amount ₹1180.00")
	assert.Contains(t, p, "Sign off as Lakshmi Traders")

	p = BuildPrompt(port.DraftInput{Tone: "firm"})
	assert.Contains(t, p, "in a firm tone")
}

func TestParseDraft(t *testing.T) {
	d, err := parseDraft(`{"subject":"Payment reminder","body":"Dear Acme"}`)
	require.NoError(t, err)
	assert.Equal(t, "Payment reminder", d.Subject)

	_, err = parseDraft("")
	assert.Error(t, err)
	_, err = parseDraft(`{"subject":"x"}`)
	assert.Error(t, err)
	_, err = parseDraft(`not json`)
	assert.Error(t, err)
}

func TestNewDrafter_Defaults(t *testing.T) {
	d, err := NewDrafter(config.AIConfig{APIKey: "test"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", d.model)
	assert.NotNil(t, d.schema)
}
