package donor

// Notifier surfaces submission outcomes to whatever UI hosts the workflow.
type Notifier interface {
	Success(message string)
	Error(message string)
	RedirectToLogin()
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Success(string)    {}
func (NopNotifier) Error(string)      {}
func (NopNotifier) RedirectToLogin() {}
