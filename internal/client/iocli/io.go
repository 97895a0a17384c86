package iocli

// IO abstracts terminal interaction so commands can be tested against a
// scripted fake.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
