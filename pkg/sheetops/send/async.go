package send

// Result reports the outcome of one background delivery.
type Result struct {
	// Op names the delivery ("email", "whatsapp").
	Op string
	// Err is nil on success, an AutomationUIError when the user must finish
	// manually, or a TransportError otherwise.
	Err error
}

// Go launches a delivery as a fire-and-forget background task and returns a
// buffered channel that will carry its single result. The task shares no
// mutable state with the caller and cannot be cancelled once started.
func Go(op string, fn func() error) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- Result{Op: op, Err: fn()}
	}()
	return ch
}
