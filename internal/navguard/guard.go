// Package navguard is a reusable confirmation gate for navigation-away
// actions. It is pure: no network, no persistence, not tied to any
// particular screen's fields.
package navguard

// Messages are the texts shown when a pending exit is intercepted.
// Zero-value fields fall back to the defaults.
type Messages struct {
	Title       string
	Description string
	ConfirmText string
	CancelText  string
}

// DefaultMessages returns the texts used when no override is given.
func DefaultMessages() Messages {
	return Messages{
		Title:       "Discard changes?",
		Description: "You have unsaved changes. Discard them and leave the screen?",
		ConfirmText: "Discard",
		CancelText:  "Don't leave",
	}
}

func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.Title == "" {
		m.Title = d.Title
	}
	if m.Description == "" {
		m.Description = d.Description
	}
	if m.ConfirmText == "" {
		m.ConfirmText = d.ConfirmText
	}
	if m.CancelText == "" {
		m.CancelText = d.CancelText
	}
	return m
}

// Pending is a suspended navigation action. Exactly two resolutions exist:
// Confirm runs the original action, Cancel discards it.
type Pending struct {
	Messages Messages
	action   func()
	resolved bool
}

// Confirm lets the original action proceed. Resolving twice is a no-op.
func (p *Pending) Confirm() {
	if p.resolved {
		return
	}
	p.resolved = true
	p.action()
}

// Cancel discards the original action; the current screen remains.
func (p *Pending) Cancel() {
	p.resolved = true
}

// Intercept gates a pending navigation-away action on the unsaved-changes
// flag. When the flag is false the action runs immediately and nil is
// returned; when true, the action is suspended behind the returned Pending.
// Override fields left empty use the default messages.
func Intercept(hasUnsavedChanges bool, action func(), override *Messages) *Pending {
	if !hasUnsavedChanges {
		action()
		return nil
	}
	msgs := DefaultMessages()
	if override != nil {
		msgs = override.withDefaults()
	}
	return &Pending{Messages: msgs, action: action}
}
