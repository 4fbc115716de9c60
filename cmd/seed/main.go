// Command seed fills a when3meet database with demo participants, one event
// and random availability, then prints the event and its admin token.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"when3meet/config"
	"when3meet/database"
	availabilityRepo "when3meet/database/repository/availability"
	eventRepo "when3meet/database/repository/event"
	userRepo "when3meet/database/repository/user"
	"when3meet/models"
	"when3meet/services/availability"
	"when3meet/services/event"
	"when3meet/services/heatmap"
	"when3meet/services/slotgrid"
	"when3meet/services/user"
	"when3meet/utils"
)

func main() {
	app := cli.App{
		Name:  "seed",
		Usage: "Create demo users, an event and random availability",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "users", Usage: "Number of participants", Value: 8},
			&cli.IntFlag{Name: "days", Usage: "Number of selected days", Value: 3},
			&cli.StringFlag{Name: "title", Usage: "Event title", Value: "Demo planning session"},
			&cli.StringFlag{Name: "start", Usage: "Daily start time", Value: "09:00"},
			&cli.StringFlag{Name: "end", Usage: "Daily end time", Value: "17:00"},
			&cli.Int64Flag{Name: "seed", Usage: "Random seed, 0 for time based"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Int("users") < 1 || c.Int("days") < 1 {
		return errors.New("users and days must be positive")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	users := userRepo.NewMongoUserRepo(db)
	events := eventRepo.NewMongoEventRepo(db)
	records := availabilityRepo.NewMongoAvailabilityRepo(db)
	for _, ensure := range []func(context.Context) error{users.EnsureIndexes, events.EnsureIndexes, records.EnsureIndexes} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}

	userSvc := user.NewService(users, logger)
	eventSvc := event.NewService(events, users, logger)
	availabilitySvc := availability.NewService(records, eventSvc, users, heatmap.NopCache{}, logger)

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var participants []*models.User
	for i := 1; i <= c.Int("users"); i++ {
		u, err := ensureUser(ctx, userSvc, users, fmt.Sprintf("Participant %d", i), fmt.Sprintf("participant_%d@example.com", i))
		if err != nil {
			return err
		}
		participants = append(participants, u)
	}

	month, year, days := seedDays(time.Now(), c.Int("days"))
	ev, err := eventSvc.CreateEvent(ctx, models.CreateEventRequest{
		Title:        c.String("title"),
		CreatorID:    participants[0].ID,
		StartTime:    c.String("start"),
		EndTime:      c.String("end"),
		SelectedDays: days,
		Month:        int(month),
		Year:         year,
	})
	if err != nil {
		return err
	}
	w, err := ev.SlotWindow()
	if err != nil {
		return err
	}

	for _, p := range participants {
		_, err := availabilitySvc.Upsert(ctx, ev.ID, models.UpsertAvailabilityRequest{
			UserID: p.ID,
			Slots:  randomSlots(rng, w.Days(), w.TotalSlots()),
		})
		if err != nil {
			return err
		}
	}

	logger.Info("seed complete",
		zap.String("eventId", ev.ID),
		zap.Int("participants", len(participants)),
		zap.Int64("seed", seed),
	)
	fmt.Printf("event:       %s\nadmin token: %s\n", ev.ID, ev.AdminToken)
	return nil
}

// ensureUser creates the participant, reusing the existing one when the email
// is already registered so the command can be run repeatedly.
func ensureUser(ctx context.Context, svc user.UserService, repo userRepo.UserRepository, name, email string) (*models.User, error) {
	u, err := svc.CreateUser(ctx, models.CreateUserRequest{UserName: name, Email: email})
	if errors.Is(err, utils.ErrConflict) {
		return repo.GetByEmail(ctx, email)
	}
	return u, err
}

// seedDays picks n consecutive days starting tomorrow, kept inside a single
// month: if the current month runs out, the days start on the 1st of the next.
func seedDays(now time.Time, n int) (time.Month, int, []int) {
	start := now.AddDate(0, 0, 1)
	month, year := start.Month(), start.Year()
	if n > slotgrid.DaysInMonth(month, year) {
		n = slotgrid.DaysInMonth(month, year)
	}
	first := start.Day()
	if first+n-1 > slotgrid.DaysInMonth(month, year) {
		next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
		month, year, first = next.Month(), next.Year(), 1
		if n > slotgrid.DaysInMonth(month, year) {
			n = slotgrid.DaysInMonth(month, year)
		}
	}
	days := make([]int, n)
	for i := range days {
		days[i] = first + i
	}
	return month, year, days
}

// randomSlots marks one or two contiguous runs per day, which is how people
// tend to fill the grid by dragging.
func randomSlots(rng *rand.Rand, days, slots int) [][]int {
	out := make([][]int, days)
	for d := range out {
		out[d] = []int{}
		for run := rng.Intn(3); run > 0; run-- {
			start := rng.Intn(slots)
			length := 1 + rng.Intn(slotgrid.SlotsPerHour*3)
			for s := start; s < start+length && s < slots; s++ {
				out[d] = append(out[d], s)
			}
		}
	}
	return out
}
