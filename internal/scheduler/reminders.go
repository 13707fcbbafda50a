package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/courtsideapp/courtside/internal/db"
)

const (
	reminderJobCron   = "*/15 * * * *"
	reminderJobWindow = 15 * time.Minute
)

// RegisterReminderJob schedules a job that records a notification row for
// every confirmed reservation starting roughly hoursBefore from now. Each
// reservation is reminded once; delivery of the notification is out of scope
// here, rows are picked up by an external sender.
func RegisterReminderJob(svc *Service, database *appdb.DB, hoursBefore int64) error {
	if database == nil {
		return fmt.Errorf("reminder job requires database")
	}

	jobName := "reservation_reminders"
	jobLogger := log.With().
		Str("component", "reservation_reminders_job").
		Str("job_name", jobName).
		Logger()

	_, err := svc.AddJob(jobName, reminderJobCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		windowStart := time.Now().UTC().Add(time.Duration(hoursBefore) * time.Hour)
		windowEnd := windowStart.Add(reminderJobWindow)

		reservations, err := database.Queries.ListUnremindedReservationsStartingBetween(ctx, appdb.ReservationsStartingBetweenParams{
			StartTime: windowStart,
			EndTime:   windowEnd,
		})
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to load reservations for reminder job")
			return
		}

		for _, reservation := range reservations {
			err := database.RunInTx(ctx, func(tx *appdb.DB) error {
				if err := tx.Queries.CreateNotification(ctx, appdb.CreateNotificationParams{
					UserID: reservation.UserID,
					Title:  "Upcoming reservation",
					Body: fmt.Sprintf("Your reservation on %s starts at %s.",
						reservation.Court.Name,
						reservation.StartTime.Local().Format("Mon Jan 2 15:04")),
				}); err != nil {
					return fmt.Errorf("create notification: %w", err)
				}
				if err := tx.Queries.MarkReservationReminded(ctx, reservation.ID); err != nil {
					return fmt.Errorf("mark reminded: %w", err)
				}
				return nil
			})
			if err != nil {
				jobLogger.Error().Err(err).
					Int64("reservation_id", reservation.ID).
					Msg("Failed to record reservation reminder")
				continue
			}
			jobLogger.Info().
				Int64("reservation_id", reservation.ID).
				Str("user_id", reservation.UserID).
				Msg("Reservation reminder recorded")
		}
	})
	return err
}
