package mailer

import (
	"bytes"
	"testing"

	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Build(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{From: "noreply@poehali.dev"})

	gm, err := m.build(&Message{
		To:       []string{"sales@example.com"},
		Subject:  "Order 12",
		HTMLBody: "<h2>Order 12</h2>",
		Attachments: []Attachment{
			{Filename: "photo_1.jpg", Data: []byte("jpegbytes")},
			{Filename: "plan.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = gm.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "From: <noreply@poehali.dev>")
	assert.Contains(t, raw, "To: <sales@example.com>")
	assert.Contains(t, raw, "Subject: Order 12")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, `filename="photo_1.jpg"`)
	assert.Contains(t, raw, `filename="plan.pdf"`)
	assert.Contains(t, raw, "application/pdf")
}

func TestSMTPMailer_BuildRejectsBadRecipient(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{From: "noreply@poehali.dev"})
	_, err := m.build(&Message{To: []string{"not an address"}, Subject: "x"})
	assert.Error(t, err)
}
