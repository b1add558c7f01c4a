// Package send delivers an exported file by SMTP email or WhatsApp Web
// browser automation. Sends run as background tasks over an immutable file
// path snapshot; they never touch table state, and their failures are
// reported back asynchronously rather than raised into the session.
package send

import "fmt"

// TransportError reports a network, timeout, or authentication failure from
// a delivery collaborator.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AutomationUIError reports that an expected browser UI element could not
// be located. The chat stays open; the user finishes manually.
type AutomationUIError struct {
	Element string
}

func (e *AutomationUIError) Error() string {
	return fmt.Sprintf("could not find %s in the page; attach and send manually in the open browser", e.Element)
}
