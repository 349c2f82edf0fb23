// Package session provides in-memory session storage for the Isolation game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short unique session ID generation
//   - Idle session expiry
//
// Core Types:
//
// Manager is the session store behind service.SessionManager. Each
// service.Session owns its own engine, so games never share state.
//
// Session Identifiers:
//
// Generated IDs are the first 8 hex characters of a random UUID. Callers may
// also pick their own ID made of letters, digits, '-' and '_'. Lookups are
// case-insensitive.
//
// Concurrency:
//
// The manager guards its map with a RWMutex. It never holds that lock while
// calling into an engine; engine access is serialized by the service layer.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
