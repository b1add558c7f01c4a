package send

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailRequestValidate(t *testing.T) {
	valid := EmailRequest{
		Addr:   "smtp.example.com:587",
		Sender: "me@example.com",
		To:     []string{"you@example.com"},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*EmailRequest)
	}{
		{"missing port", func(r *EmailRequest) { r.Addr = "smtp.example.com" }},
		{"bad port", func(r *EmailRequest) { r.Addr = "smtp.example.com:abc" }},
		{"no sender", func(r *EmailRequest) { r.Sender = "" }},
		{"no recipients", func(r *EmailRequest) { r.To = nil }},
	}
	for _, tt := range tests {
		req := valid
		tt.mutate(&req)
		assert.Error(t, req.Validate(), tt.name)
	}
}

func TestEmailBadAddrIsTransportError(t *testing.T) {
	err := Email(context.Background(), EmailRequest{Addr: "nonsense"})
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "email", transport.Op)
}

func TestWhatsAppRequiresPhone(t *testing.T) {
	err := WhatsApp(context.Background(), WhatsAppRequest{FilePath: "f.xlsx"})
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestGoDeliversResult(t *testing.T) {
	sentinel := errors.New("boom")
	ch := Go("email", func() error { return sentinel })

	select {
	case result := <-ch:
		assert.Equal(t, "email", result.Op)
		assert.ErrorIs(t, result.Err, sentinel)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestGoDoesNotBlockLauncher(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ch := Go("whatsapp", func() error {
		close(started)
		<-release
		return nil
	})

	<-started
	// The launcher returned while the task still runs; the buffered channel
	// keeps the result even if read later.
	close(release)
	result := <-ch
	assert.NoError(t, result.Err)
}

func TestAutomationUIErrorMessage(t *testing.T) {
	err := &AutomationUIError{Element: "attach button"}
	assert.Contains(t, err.Error(), "manually")
	assert.Contains(t, err.Error(), "attach button")
}
