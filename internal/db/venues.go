// internal/db/venues.go
package db

import "context"

const listVenues = `
SELECT id, name, address, city, phone_number, description, amenities, coordinates, owner_id
FROM venues
ORDER BY name
`

func (q *Queries) ListVenues(ctx context.Context) ([]Venue, error) {
	rows, err := q.db.QueryContext(ctx, listVenues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []Venue{}
	for rows.Next() {
		var v Venue
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Address, &v.City, &v.PhoneNumber,
			&v.Description, &v.Amenities, &v.Coordinates, &v.OwnerID,
		); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

const getVenue = `
SELECT id, name, address, city, phone_number, description, amenities, coordinates, owner_id
FROM venues
WHERE id = ?
`

func (q *Queries) GetVenue(ctx context.Context, id int64) (Venue, error) {
	var v Venue
	err := q.db.QueryRowContext(ctx, getVenue, id).Scan(
		&v.ID, &v.Name, &v.Address, &v.City, &v.PhoneNumber,
		&v.Description, &v.Amenities, &v.Coordinates, &v.OwnerID,
	)
	return v, err
}

const listOperatingHours = `
SELECT id, venue_id, day_of_week, open_time, close_time
FROM operating_hours
WHERE venue_id = ?
ORDER BY day_of_week
`

func (q *Queries) ListOperatingHours(ctx context.Context, venueID int64) ([]OperatingHours, error) {
	rows, err := q.db.QueryContext(ctx, listOperatingHours, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := []OperatingHours{}
	for rows.Next() {
		var h OperatingHours
		if err := rows.Scan(&h.ID, &h.VenueID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime); err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}
