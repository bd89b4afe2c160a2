package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main catalog database
	DefaultDatabasePath = "./locallibrary.db"

	// DefaultSessionsDatabasePath is the default path for the session store,
	// kept in its own file so session churn never contends with catalog writes
	DefaultSessionsDatabasePath = "./locallibrary-sessions.db"
)
