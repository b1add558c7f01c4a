package send

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Selectors in the WhatsApp Web chat view.
const (
	selAttach    = `span[data-icon='clip']`
	selFileInput = `//input[@type='file']`
	selSend      = `span[data-icon='send']`
)

// uiWait bounds how long each chat UI element is awaited before falling back
// to "finish manually".
const uiWait = 30 * time.Second

// chatLoadDelay gives WhatsApp Web time to open the conversation (and the
// user time to scan the QR code on a fresh profile).
const chatLoadDelay = 8 * time.Second

// WhatsAppRequest describes one file delivery through WhatsApp Web.
type WhatsAppRequest struct {
	// Phone is the destination in international form without '+'.
	Phone string
	// FilePath is the file to attach, snapshotted at launch time.
	FilePath string
	// Message is optional text prefilled into the chat.
	Message string
	// ProfileDir persists the browser profile so the QR login survives
	// between sends. Empty selects a directory under the user home.
	ProfileDir string
}

// WhatsApp opens the chat in a visible browser, attaches the file, and
// presses send. A missing UI element yields AutomationUIError with the chat
// left open; browser or navigation failures yield TransportError.
func WhatsApp(ctx context.Context, req WhatsAppRequest) error {
	if req.Phone == "" {
		return &TransportError{Op: "whatsapp", Err: errors.New("phone number is required")}
	}
	abs, err := filepath.Abs(req.FilePath)
	if err != nil {
		return &TransportError{Op: "whatsapp", Err: err}
	}

	profile := req.ProfileDir
	if profile == "" {
		home, _ := os.UserHomeDir()
		profile = filepath.Join(home, ".sheetops-chrome-profile")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.UserDataDir(profile),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	chatURL := fmt.Sprintf("https://web.whatsapp.com/send?phone=%s&text=%s",
		url.QueryEscape(req.Phone), url.QueryEscape(req.Message))
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(chatURL),
		chromedp.Sleep(chatLoadDelay),
	); err != nil {
		return &TransportError{Op: "whatsapp", Err: err}
	}

	// Drive the attach flow with its own deadline so a redesigned page
	// degrades to manual completion instead of hanging.
	uiCtx, cancelUI := context.WithTimeout(browserCtx, uiWait)
	defer cancelUI()
	if err := chromedp.Run(uiCtx,
		chromedp.WaitVisible(selAttach, chromedp.ByQuery),
		chromedp.Click(selAttach, chromedp.ByQuery),
		chromedp.SetUploadFiles(selFileInput, []string{abs}, chromedp.BySearch),
		chromedp.Sleep(2*time.Second),
		chromedp.WaitVisible(selSend, chromedp.ByQuery),
		chromedp.Click(selSend, chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &AutomationUIError{Element: "attach/send controls"}
		}
		return &TransportError{Op: "whatsapp", Err: err}
	}
	return nil
}
