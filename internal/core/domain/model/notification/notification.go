// Package notification contains the Notification record delivered to a
// user's inbox when orders settle or withdrawals get reviewed.
package notification

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// Kinds of notifications.
const (
	KindOrder      = "order"
	KindWithdrawal = "withdrawal"
	KindSystem     = "system"
)

// Notification is a message in a user's inbox. The only mutation after
// creation is marking it read.
type Notification struct {
	id        kernel.UUID
	accountID kernel.UUID
	title     string
	content   string
	kind      string

	relatedEntityType string
	relatedEntityID   *kernel.UUID

	read      bool
	createdAt time.Time
}

// NewNotification creates an unread notification.
// The related entity fields are optional and let clients jump to the order
// or withdrawal the message is about.
func NewNotification(
	id, accountID kernel.UUID,
	title, content, kind string,
	relatedEntityType string,
	relatedEntityID *kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := accountID.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if kind == "" {
		kind = KindSystem
	}

	return &Notification{
		id:                id,
		accountID:         accountID,
		title:             title,
		content:           content,
		kind:              kind,
		relatedEntityType: relatedEntityType,
		relatedEntityID:   relatedEntityID,
		createdAt:         createdAt,
	}, nil
}

// RestoreNotification rehydrates a notification from persistence.
func RestoreNotification(
	id, accountID kernel.UUID,
	title, content, kind string,
	relatedEntityType string,
	relatedEntityID *kernel.UUID,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, accountID, title, content, kind, relatedEntityType, relatedEntityID, createdAt)
	if err != nil {
		return nil, err
	}
	n.read = read
	return n, nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// AccountID returns the recipient.
func (n *Notification) AccountID() kernel.UUID {
	return n.accountID
}

// Title returns the message title.
func (n *Notification) Title() string {
	return n.title
}

// Content returns the message body.
func (n *Notification) Content() string {
	return n.content
}

// Kind returns the message category.
func (n *Notification) Kind() string {
	return n.kind
}

// RelatedEntityType returns the kind of entity the message links to.
func (n *Notification) RelatedEntityType() string {
	return n.relatedEntityType
}

// RelatedEntityID returns the entity the message links to, or nil.
func (n *Notification) RelatedEntityID() *kernel.UUID {
	return n.relatedEntityID
}

// Read reports whether the recipient has opened the message.
func (n *Notification) Read() bool {
	return n.read
}

// CreatedAt returns when the message was sent.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flags the message as opened. Idempotent.
func (n *Notification) MarkRead() {
	n.read = true
}
