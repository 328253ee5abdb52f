// Package sweeper runs the recurring staleness scan: every user's clothing is
// checked for items worn long ago, and the owner gets a reminder email for
// each stale item.
package sweeper

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/virtuwear/wardrobe-backend/mailer"
	"github.com/virtuwear/wardrobe-backend/store"
)

// defaultMaxInFlight bounds concurrent reminder dispatch so one slow mail
// relay cannot serialize the whole sweep.
const defaultMaxInFlight = 4

// Sweeper scans all wardrobes on a cron schedule. Only items that were worn
// and have since gone stale trigger a reminder; never-worn items are skipped.
type Sweeper struct {
	users       store.UserStore
	clothing    store.ClothingStore
	mailer      mailer.Mailer
	staleAfter  time.Duration
	maxInFlight int
	now         func() time.Time

	mu       sync.Mutex
	sweeping bool
	cron     *cron.Cron
}

func New(users store.UserStore, clothing store.ClothingStore, m mailer.Mailer, staleAfterDays int) *Sweeper {
	return &Sweeper{
		users:       users,
		clothing:    clothing,
		mailer:      m,
		staleAfter:  time.Duration(staleAfterDays) * 24 * time.Hour,
		maxInFlight: defaultMaxInFlight,
		now:         time.Now,
	}
}

// Start schedules the sweep with the given cron expression and begins ticking.
func (s *Sweeper) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("Staleness sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	log.Printf("Staleness sweeper scheduled: %q", schedule)
	return nil
}

// Stop halts the schedule. An in-flight sweep runs to completion.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep runs one tick. The single-flight guard drops a tick that fires while
// a previous sweep is still running. A failure fetching the user set abandons
// the tick; the next scheduled tick retries from scratch. A failure sending
// one reminder never aborts the rest.
func (s *Sweeper) Sweep(ctx context.Context) error {
	s.mu.Lock()
	if s.sweeping {
		s.mu.Unlock()
		log.Println("Staleness sweep already running, skipping tick")
		return nil
	}
	s.sweeping = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.sweeping = false
		s.mu.Unlock()
	}()

	users, err := s.users.All(ctx)
	if err != nil {
		return fmt.Errorf("fetch users: %w", err)
	}

	now := s.now()
	staleDays := int(s.staleAfter.Hours() / 24)

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxInFlight)

	for _, user := range users {
		items, err := s.clothing.FindByOwner(ctx, user.ID)
		if err != nil {
			log.Printf("Sweep: fetch clothing for user %s failed: %v", user.ID.Hex(), err)
			continue
		}

		for _, item := range items {
			// Never-worn items carry no last-worn date and are not reminded.
			if item.LastWorn == nil {
				continue
			}
			if now.Sub(*item.LastWorn) <= s.staleAfter {
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func(toName, toEmail, itemName, itemID string) {
				defer wg.Done()
				defer func() { <-sem }()

				subject := fmt.Sprintf("Reminder: Your clothing item has not been worn for over %d days", staleDays)
				text := fmt.Sprintf("Hello, this is a reminder that the clothing item '%s' has not been worn for more than %d days.", itemName, staleDays)
				html := fmt.Sprintf("<p>Hello, this is a reminder that the clothing item <strong>%s</strong> has not been worn for more than %d days.</p>", itemName, staleDays)

				if err := s.mailer.Send(toName, toEmail, subject, text, html); err != nil {
					log.Printf("Sweep: reminder for clothing %s to %s failed: %v", itemID, toEmail, err)
				}
			}(user.Username, user.Email, item.Name, item.ID.Hex())
		}
	}

	wg.Wait()
	return nil
}
