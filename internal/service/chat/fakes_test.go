package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"solace/internal/domain"
	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
	domainllm "solace/internal/domain/services/llm"
)

// memoryStore implements both session and history repositories in memory
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]chatModels.Session
	history  []chatModels.HistoryEntry
	// setTitleCalls counts SetTitle invocations per session
	setTitleCalls map[string]int
	failHistory   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions:      map[string]chatModels.Session{},
		setTitleCalls: map[string]int{},
	}
}

type memorySessions struct{ *memoryStore }
type memoryHistory struct{ *memoryStore }

func (m memorySessions) Create(_ context.Context, s *chatModels.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.SessionID]; ok {
		return domain.ErrConflict
	}
	m.sessions[s.SessionID] = *s
	return nil
}

func (m memorySessions) Get(_ context.Context, id string) (*chatModels.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return &s, nil
}

func (m memorySessions) FindOldestUnused(_ context.Context, email string) (*chatModels.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	used := map[string]bool{}
	for _, e := range m.history {
		used[e.SessionID] = true
	}
	var best *chatModels.Session
	for _, s := range m.sessions {
		s := s
		if s.UserEmail != email || used[s.SessionID] {
			continue
		}
		if best == nil || s.SessionStart.Before(best.SessionStart) {
			best = &s
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

func (m memorySessions) SetTitle(_ context.Context, id, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setTitleCalls[id]++
	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Title = &title
	m.sessions[id] = s
	return nil
}

func (m memorySessions) ListByStartRange(_ context.Context, email string, from, to time.Time) ([]chatModels.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []chatModels.Session{}
	for _, s := range m.sessions {
		if s.UserEmail == email && !s.SessionStart.Before(from) && s.SessionStart.Before(to) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionStart.After(out[j].SessionStart) })
	return out, nil
}

func (m memoryHistory) Create(_ context.Context, e *chatModels.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failHistory != nil {
		return m.failHistory
	}
	m.history = append(m.history, *e)
	return nil
}

func (m memoryHistory) CountBySession(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.history {
		if e.SessionID == id {
			n++
		}
	}
	return n, nil
}

func (m memoryHistory) ListBySession(_ context.Context, id string, order chatRepo.SortOrder) ([]chatModels.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []chatModels.HistoryEntry{}
	for _, e := range m.history {
		if e.SessionID == id {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if order == chatRepo.Descending {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if order == chatRepo.Descending {
			return a.ResponseID > b.ResponseID
		}
		return a.ResponseID < b.ResponseID
	})
	return out, nil
}

// fakeGateway answers title requests and conversation requests separately
type fakeGateway struct {
	mu       sync.Mutex
	calls    []domainllm.GenerateRequest
	titleFn  func(req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error)
	replyFn  func(req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error)
	titleSys string
}

func (g *fakeGateway) Name() string              { return "fake" }
func (g *fakeGateway) SupportsModel(string) bool { return true }

func (g *fakeGateway) GenerateResponse(_ context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	g.mu.Lock()
	g.calls = append(g.calls, *req)
	g.mu.Unlock()

	if req.System == g.titleSys {
		if g.titleFn != nil {
			return g.titleFn(req)
		}
		return &domainllm.GenerateResponse{Text: "Finding Calm"}, nil
	}
	if g.replyFn != nil {
		return g.replyFn(req)
	}
	last := req.Messages[len(req.Messages)-1].Content
	return &domainllm.GenerateResponse{Text: "echo: " + last}, nil
}

func (g *fakeGateway) titleCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c.System == g.titleSys {
			n++
		}
	}
	return n
}

func (g *fakeGateway) lastReplyRequest() *domainllm.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := len(g.calls) - 1; i >= 0; i-- {
		if g.calls[i].System != g.titleSys {
			return &g.calls[i]
		}
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// steppingClock returns a clock that advances one second per call
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur := t
		t = t.Add(time.Second)
		return cur
	}
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%04d", prefix, n)
	}
}
