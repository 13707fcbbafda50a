// internal/db/sports.go
package db

import "context"

const listSports = `
SELECT id, name, description
FROM sports
ORDER BY name
`

func (q *Queries) ListSports(ctx context.Context) ([]Sport, error) {
	rows, err := q.db.QueryContext(ctx, listSports)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := []Sport{}
	for rows.Next() {
		var s Sport
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}
