package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"solace/internal/auth"
	"solace/internal/domain"
	"solace/internal/domain/models"
	chatModels "solace/internal/domain/models/chat"
	"solace/internal/domain/repositories"
	chatRepo "solace/internal/domain/repositories/chat"
)

// Exchange is one seeded query and reply
type Exchange struct {
	Query    string
	Response string
}

// Conversation is a seeded session, placed relative to the current day
type Conversation struct {
	Title     string
	DaysAgo   int
	Hour      int
	Exchanges []Exchange
}

// DemoConversations covers every grouping bucket, one session outside the
// last-week window, and one unused session that the next chat will reuse.
func DemoConversations() []Conversation {
	return []Conversation{
		{
			Title: "Trouble Sleeping",
			Hour:  9,
			Exchanges: []Exchange{
				{
					Query:    "I keep waking up at 3am and can't get back to sleep.",
					Response: "That sounds exhausting. Waking at the same hour often ties to stress or routine. What has been on your mind in the evenings lately?",
				},
				{
					Query:    "Mostly work deadlines.",
					Response: "Deadlines can follow us to bed. A short wind-down ritual, like writing tomorrow's list before sleep, can help park those thoughts.",
				},
			},
		},
		{
			Title:   "Feeling Overwhelmed",
			DaysAgo: 1,
			Hour:    18,
			Exchanges: []Exchange{
				{
					Query:    "Everything feels like too much this week.",
					Response: "I'm sorry it feels that heavy. Would it help to pick one small thing we can take off your plate today?",
				},
			},
		},
		{
			Title:   "Talking To Family",
			DaysAgo: 4,
			Hour:    20,
			Exchanges: []Exchange{
				{
					Query:    "How do I tell my parents I'm seeing a therapist?",
					Response: "There's no perfect script. Many people start with why it matters to them, then leave room for questions.",
				},
			},
		},
		{
			Title:   "Old Conversation",
			DaysAgo: 12,
			Hour:    12,
			Exchanges: []Exchange{
				{
					Query:    "Just checking in.",
					Response: "Thanks for checking in. How are you feeling today?",
				},
			},
		},
		{
			// Unused: no history and no title yet
			DaysAgo: 2,
			Hour:    8,
		},
	}
}

// Seeder writes demo data through the repositories
type Seeder struct {
	users    repositories.UserRepository
	sessions chatRepo.SessionRepository
	history  chatRepo.HistoryRepository
	hasher   auth.PasswordHasher
	location *time.Location
	logger   *slog.Logger
}

// NewSeeder creates a new seeder. loc decides what "today" means.
func NewSeeder(
	users repositories.UserRepository,
	sessions chatRepo.SessionRepository,
	history chatRepo.HistoryRepository,
	hasher auth.PasswordHasher,
	loc *time.Location,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		users:    users,
		sessions: sessions,
		history:  history,
		hasher:   hasher,
		location: loc,
		logger:   logger,
	}
}

// SeedUser creates the demo account. An existing account is left alone.
func (s *Seeder) SeedUser(ctx context.Context, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrConflict) {
		s.logger.Info("demo user already exists", "email", email)
		return nil
	}
	return err
}

// SeedConversations writes the conversations for the user and returns the session ids in order
func (s *Seeder) SeedConversations(ctx context.Context, email string, now time.Time, conversations []Conversation) ([]string, error) {
	local := now.In(s.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)

	ids := make([]string, 0, len(conversations))
	for _, c := range conversations {
		start := midnight.AddDate(0, 0, -c.DaysAgo).Add(time.Duration(c.Hour) * time.Hour).UTC()

		session := &chatModels.Session{
			SessionID:    uuid.NewString(),
			UserEmail:    email,
			SessionStart: start,
		}
		if err := s.sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("seed session %q: %w", c.Title, err)
		}

		for i, ex := range c.Exchanges {
			entry := &chatModels.HistoryEntry{
				ResponseID:   uuid.Must(uuid.NewV7()).String(),
				SessionID:    session.SessionID,
				QueryText:    ex.Query,
				ResponseText: ex.Response,
				CreatedAt:    start.Add(time.Duration(i+1) * time.Minute),
			}
			if err := s.history.Create(ctx, entry); err != nil {
				return nil, fmt.Errorf("seed history of %q: %w", c.Title, err)
			}
		}

		if c.Title != "" {
			if err := s.sessions.SetTitle(ctx, session.SessionID, c.Title); err != nil {
				return nil, fmt.Errorf("seed title %q: %w", c.Title, err)
			}
		}

		s.logger.Debug("seeded session",
			"session_id", session.SessionID,
			"title", c.Title,
			"entries", len(c.Exchanges),
		)
		ids = append(ids, session.SessionID)
	}

	return ids, nil
}
