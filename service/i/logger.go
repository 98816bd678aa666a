package i

// Logger is the leveled logger handed to components.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
