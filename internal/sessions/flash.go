package sessions

import "context"

const flashKey = "flash"

// PutFlash stores a one-shot notification message in the session.
func (m *Manager) PutFlash(ctx context.Context, message string) {
	m.Put(ctx, flashKey, message)
}

// PopFlash returns the pending notification message and removes it
// from the session. Returns "" when there is none.
func (m *Manager) PopFlash(ctx context.Context) string {
	return m.PopString(ctx, flashKey)
}
