package core

// Logger is any service that can log messages.
// expected args: error, map[string]interface{} (extras), Actor
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Actor is the authenticated admin behind a logged event.
type Actor struct {
	ID       string
	Username string
}
