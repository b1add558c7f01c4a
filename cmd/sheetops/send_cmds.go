package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetops/sheetops/pkg/sheetops/send"
	"github.com/sheetops/sheetops/pkg/sheetops/session"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Forward an exported file by email or WhatsApp Web",
	}
	cmd.AddCommand(newSendEmailCmd(), newSendWhatsAppCmd())
	return cmd
}

func newSendEmailCmd() *cobra.Command {
	var to []string
	var subject, body, attach, smtpAddr, sender, password string
	var saveSettings bool
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Send a file as an email attachment over SMTP",
		Long: `Send a file as an attachment. The SMTP server, sender, and
password default from saved settings and the SHEETOPS_SMTP_ADDR,
SHEETOPS_SMTP_SENDER, and SHEETOPS_SMTP_PASSWORD environment variables.
The attachment defaults to the last exported file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession()
			settings := sess.Settings()

			if attach == "" {
				attach = sess.LastExported()
			}
			if err := requireFile(attach); err != nil {
				return fmt.Errorf("nothing to send: %w", err)
			}
			applySMTPDefaults(settings, &smtpAddr, &sender, &password)
			if smtpAddr == "" || sender == "" || password == "" {
				return errors.New("no SMTP credentials provided; set flags or SHEETOPS_SMTP_* variables")
			}
			if saveSettings {
				settings.SMTP = &session.SMTP{Addr: smtpAddr, Sender: sender, Save: true}
				if err := settings.Store(); err != nil {
					fmt.Fprintf(os.Stderr, "warning: settings not saved: %v\n", err)
				}
			}

			req := send.EmailRequest{
				Addr:           smtpAddr,
				Sender:         sender,
				Password:       password,
				To:             to,
				Subject:        subject,
				Body:           body,
				AttachmentPath: attach,
			}
			result := <-send.Go("email", func() error {
				return send.Email(context.Background(), req)
			})
			if result.Err != nil {
				return result.Err
			}
			fmt.Println("email sent successfully")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient address(es)")
	cmd.Flags().StringVar(&subject, "subject", "sheetops - file", "Message subject")
	cmd.Flags().StringVar(&body, "body", "Please find the attached file.", "Message body")
	cmd.Flags().StringVar(&attach, "attach", "", "File to attach (default: last exported file)")
	cmd.Flags().StringVar(&smtpAddr, "smtp", "", "SMTP server as host:port, e.g. smtp.gmail.com:587")
	cmd.Flags().StringVar(&sender, "sender", "", "Sender email address")
	cmd.Flags().StringVar(&password, "password", "", "SMTP password or app password")
	cmd.Flags().BoolVar(&saveSettings, "save-settings", false, "Remember the SMTP server and sender")
	cmd.MarkFlagRequired("to")
	return cmd
}

// applySMTPDefaults fills unset transport fields from saved settings, then
// from the environment. Passwords are never persisted, so they can only come
// from the flag or the environment.
func applySMTPDefaults(settings *session.Settings, addr, sender, password *string) {
	if settings.SMTP != nil {
		if *addr == "" {
			*addr = settings.SMTP.Addr
		}
		if *sender == "" {
			*sender = settings.SMTP.Sender
		}
	}
	if *addr == "" {
		*addr = os.Getenv("SHEETOPS_SMTP_ADDR")
	}
	if *sender == "" {
		*sender = os.Getenv("SHEETOPS_SMTP_SENDER")
	}
	if *password == "" {
		*password = os.Getenv("SHEETOPS_SMTP_PASSWORD")
	}
}

func newSendWhatsAppCmd() *cobra.Command {
	var phone, attach, message string
	cmd := &cobra.Command{
		Use:   "whatsapp",
		Short: "Send a file through WhatsApp Web browser automation",
		Long: `Open WhatsApp Web in a browser, attach the file to the chat
with the given phone number, and press send. On the first run, scan the QR
code; the browser profile is kept so later sends stay logged in. If the
page layout prevents automation, the chat is left open to finish manually.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession()
			if attach == "" {
				attach = sess.LastExported()
			}
			if err := requireFile(attach); err != nil {
				return fmt.Errorf("nothing to send: %w", err)
			}

			req := send.WhatsAppRequest{
				Phone:    phone,
				FilePath: attach,
				Message:  message,
			}
			result := <-send.Go("whatsapp", func() error {
				return send.WhatsApp(context.Background(), req)
			})
			var uiErr *send.AutomationUIError
			if errors.As(result.Err, &uiErr) {
				fmt.Println(uiErr.Error())
				return nil
			}
			if result.Err != nil {
				return result.Err
			}
			fmt.Println("file send attempted; check WhatsApp Web in the browser")
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Destination phone number in international form, e.g. 9198xxxxxxx")
	cmd.Flags().StringVar(&attach, "attach", "", "File to send (default: last exported file)")
	cmd.Flags().StringVar(&message, "message", "", "Optional message text")
	cmd.MarkFlagRequired("phone")
	return cmd
}
