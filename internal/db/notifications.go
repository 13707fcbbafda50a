// internal/db/notifications.go
package db

import "context"

type CreateNotificationParams struct {
	UserID string
	Title  string
	Body   string
	Icon   string
}

const createNotification = `
INSERT INTO notifications (user_id, title, body, icon)
VALUES (?, ?, ?, ?)
`

// CreateNotification persists a notification row. Delivery (push, email) is
// an external collaborator's concern; this service only records them.
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) error {
	_, err := q.db.ExecContext(ctx, createNotification, arg.UserID, arg.Title, arg.Body, arg.Icon)
	return err
}
