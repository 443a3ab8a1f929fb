package imgdecode

import "fmt"

// EngineError is a fault raised inside the decode engine and captured
// at the package boundary. It carries the engine's own diagnostic text.
type EngineError struct {
	Op   string // the entry point where the fault surfaced
	Diag string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: engine fault: %s", e.Op, e.Diag)
}

// capture invokes one engine entry point and converts a panic inside it
// into an ordinary EngineError. The engine's stack is fully unwound by
// the time capture returns, so its internal cleanup has already run and
// the caller may Reset or Close the decoder as usual.
func capture(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EngineError{Op: op, Diag: fmt.Sprint(r)}
		}
	}()
	return fn()
}
