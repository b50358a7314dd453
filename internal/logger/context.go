package logger

// Component-specific logger functions

// DB returns a logger for remote store operations
func DB() Logger {
	return WithField("component", "db")
}

// Local returns a logger for the local fallback store
func Local() Logger {
	return WithField("component", "local")
}

// Orchestrator returns a logger for load and mutation coordination
func Orchestrator() Logger {
	return WithField("component", "orchestrator")
}

// Notify returns a logger for email notifications
func Notify() Logger {
	return WithField("component", "notify")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}
