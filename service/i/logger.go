package i

// Logger is the leveled logger used by the services.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
