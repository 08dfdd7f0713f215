package ses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/port"
)

func TestBuildInput(t *testing.T) {
	in := buildInput("Lakshmi Traders", "billing@lakshmi.in", port.EmailMessage{
		ToAddress: "a@acme.in",
		ToName:    "Acme",
		Subject:   "Follow-up on Invoice #3/2024",
		TextBody:  "Dear Acme,",
	})

	require.NotNil(t, in.FromEmailAddress)
	assert.Equal(t, "Lakshmi Traders <billing@lakshmi.in>", *in.FromEmailAddress)
	assert.Equal(t, []string{"Acme <a@acme.in>"}, in.Destination.ToAddresses)
	assert.Equal(t, "Follow-up on Invoice #3/2024", *in.Content.Simple.Subject.Data)
	assert.Equal(t, "Dear Acme,", *in.Content.Simple.Body.Text.Data)
	assert.Nil(t, in.Content.Simple.Body.Html)
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "a@acme.in", formatAddress("", "a@acme.in"))
	assert.Equal(t, "Acme <a@acme.in>", formatAddress("Acme", "a@acme.in"))
}
