package sweeper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/store"
)

type sentMail struct {
	toName  string
	toEmail string
	subject string
	text    string
}

// fakeMailer records every dispatch. Sends to an address in failTo return an
// error; if gate is non-nil each send blocks on it after signalling entered.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failTo  map[string]bool
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeMailer) Send(toName, toEmail, subject, text, html string) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.failTo[toEmail] {
		return errors.New("relay rejected message")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{toName: toName, toEmail: toEmail, subject: subject, text: text})
	return nil
}

func (f *fakeMailer) sentTo(email string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMail
	for _, m := range f.sent {
		if m.toEmail == email {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func seedUser(t *testing.T, mem *store.Memory, username string) *models.User {
	t.Helper()
	user, err := mem.Users.Create(context.Background(), &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hash",
		Clothes:   []primitive.ObjectID{},
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return user
}

func seedItem(t *testing.T, mem *store.Memory, owner *models.User, name string, lastWorn *time.Time) *models.Clothing {
	t.Helper()
	item, err := mem.Clothing.Insert(context.Background(), &models.Clothing{
		Name:      name,
		Size:      "M",
		Color:     "blue",
		Brand:     "Acme",
		Category:  "shirts",
		LastWorn:  lastWorn,
		CreatedAt: time.Now().Add(-2 * 365 * 24 * time.Hour),
		User:      owner.ID,
	})
	require.NoError(t, err)
	return item
}

func newTestSweeper(mem *store.Memory, m *fakeMailer, now time.Time) *Sweeper {
	s := New(mem.Users, mem.Clothing, m, 180)
	s.now = func() time.Time { return now }
	return s
}

func daysAgo(now time.Time, days int) *time.Time {
	t := now.Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

func TestSweep_NeverWornIsNeverReminded(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{}
	now := time.Now()

	alice := seedUser(t, mem, "alice")
	// Creation date is ancient, but the item was never worn.
	seedItem(t, mem, alice, "Dusty Coat", nil)

	s := newTestSweeper(mem, m, now)
	require.NoError(t, s.Sweep(context.Background()))
	assert.Zero(t, m.count())
}

func TestSweep_ThresholdBoundary(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{}
	now := time.Now()

	alice := seedUser(t, mem, "alice")
	seedItem(t, mem, alice, "Old Jacket", daysAgo(now, 181))
	seedItem(t, mem, alice, "Fresh Shirt", daysAgo(now, 179))

	s := newTestSweeper(mem, m, now)
	require.NoError(t, s.Sweep(context.Background()))

	reminders := m.sentTo("alice@example.com")
	require.Len(t, reminders, 1, "exactly one reminder for the 181-day item")
	assert.Contains(t, reminders[0].text, "Old Jacket")
	assert.Contains(t, reminders[0].subject, "180 days")
	assert.Equal(t, "alice", reminders[0].toName)
}

func TestSweep_RemindersGoToTheOwner(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{}
	now := time.Now()

	alice := seedUser(t, mem, "alice")
	bob := seedUser(t, mem, "bob")
	seedItem(t, mem, alice, "Alice Jacket", daysAgo(now, 200))
	seedItem(t, mem, bob, "Bob Jeans", daysAgo(now, 300))

	s := newTestSweeper(mem, m, now)
	require.NoError(t, s.Sweep(context.Background()))

	require.Len(t, m.sentTo("alice@example.com"), 1)
	require.Len(t, m.sentTo("bob@example.com"), 1)
	assert.Contains(t, m.sentTo("bob@example.com")[0].text, "Bob Jeans")
}

func TestSweep_OneFailureDoesNotAbortTheRest(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{failTo: map[string]bool{"alice@example.com": true}}
	now := time.Now()

	alice := seedUser(t, mem, "alice")
	bob := seedUser(t, mem, "bob")
	seedItem(t, mem, alice, "Alice Jacket", daysAgo(now, 200))
	seedItem(t, mem, bob, "Bob Jeans", daysAgo(now, 200))

	s := newTestSweeper(mem, m, now)
	require.NoError(t, s.Sweep(context.Background()), "dispatch failures never fail the tick")
	require.Len(t, m.sentTo("bob@example.com"), 1)
}

func TestSweep_ManyItemsBoundedDispatch(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{}
	now := time.Now()

	alice := seedUser(t, mem, "alice")
	for i := 0; i < 20; i++ {
		seedItem(t, mem, alice, fmt.Sprintf("Item %d", i), daysAgo(now, 200+i))
	}

	s := newTestSweeper(mem, m, now)
	require.NoError(t, s.Sweep(context.Background()))
	assert.Equal(t, 20, m.count())
	for _, mail := range m.sentTo("alice@example.com") {
		assert.True(t, strings.HasPrefix(mail.subject, "Reminder:"))
	}
}

func TestSweep_SingleFlight(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	now := time.Now()

	alice := seedUser(t, mem, "alice")
	seedItem(t, mem, alice, "Old Jacket", daysAgo(now, 200))

	s := newTestSweeper(mem, m, now)

	done := make(chan error, 1)
	go func() { done <- s.Sweep(context.Background()) }()

	// Wait until the first sweep is mid-dispatch, then tick again.
	<-m.entered
	require.NoError(t, s.Sweep(context.Background()), "overlapping tick is dropped, not an error")

	close(m.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, m.count(), "the dropped tick sent nothing")
}

// failingUsers makes the full user fetch fail.
type failingUsers struct {
	store.UserStore
}

func (failingUsers) All(ctx context.Context) ([]models.User, error) {
	return nil, errors.New("connection reset")
}

func TestSweep_FetchFailureAbandonsTick(t *testing.T) {
	mem := store.NewMemory()
	m := &fakeMailer{}

	s := New(failingUsers{}, mem.Clothing, m, 180)
	err := s.Sweep(context.Background())
	require.Error(t, err)
	assert.Zero(t, m.count())

	// The guard is released; the next tick runs normally.
	s2 := newTestSweeper(mem, m, time.Now())
	require.NoError(t, s2.Sweep(context.Background()))
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	mem := store.NewMemory()
	s := New(mem.Users, mem.Clothing, &fakeMailer{}, 180)
	require.Error(t, s.Start("not a cron expression"))

	require.NoError(t, s.Start("0 0 * * *"))
	s.Stop()
}
