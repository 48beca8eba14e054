package ports

// KeyReader delivers raw keystrokes one byte at a time.
type KeyReader interface {
	// Interactive reports whether the reader is attached to a real
	// terminal. Sessions refuse to start when it is false.
	Interactive() bool
	// ReadKey blocks until one byte of input is available.
	ReadKey() (byte, error)
}
