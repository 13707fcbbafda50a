// internal/db/courts.go
package db

import "context"

const getCourt = `
SELECT id, venue_id, sport_id, name, is_indoor, base_price, description
FROM courts
WHERE id = ?
`

func (q *Queries) GetCourt(ctx context.Context, id int64) (Court, error) {
	var c Court
	err := q.db.QueryRowContext(ctx, getCourt, id).Scan(
		&c.ID, &c.VenueID, &c.SportID, &c.Name, &c.IsIndoor, &c.BasePrice, &c.Description,
	)
	return c, err
}

const listCourtsByVenue = `
SELECT id, venue_id, sport_id, name, is_indoor, base_price, description
FROM courts
WHERE venue_id = ?
ORDER BY name
`

func (q *Queries) ListCourtsByVenue(ctx context.Context, venueID int64) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listCourtsByVenue, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := []Court{}
	for rows.Next() {
		var c Court
		if err := rows.Scan(&c.ID, &c.VenueID, &c.SportID, &c.Name, &c.IsIndoor, &c.BasePrice, &c.Description); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

// CourtWithSport carries the sport name alongside the court for venue
// browsing responses.
type CourtWithSport struct {
	Court
	SportName string `json:"sport_name"`
}

const listCourtsWithSportByVenue = `
SELECT c.id, c.venue_id, c.sport_id, c.name, c.is_indoor, c.base_price, c.description, s.name
FROM courts c
JOIN sports s ON s.id = c.sport_id
WHERE c.venue_id = ?
ORDER BY c.name
`

func (q *Queries) ListCourtsWithSportByVenue(ctx context.Context, venueID int64) ([]CourtWithSport, error) {
	rows, err := q.db.QueryContext(ctx, listCourtsWithSportByVenue, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := []CourtWithSport{}
	for rows.Next() {
		var c CourtWithSport
		if err := rows.Scan(&c.ID, &c.VenueID, &c.SportID, &c.Name, &c.IsIndoor, &c.BasePrice, &c.Description, &c.SportName); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}
