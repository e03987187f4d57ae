package ingest

import (
	"context"

	"reddit-graph/backend/internal/graph"
)

type edge struct {
	kind     graph.RelationshipKind
	username string
	target   string
}

// memoryStore mimics the Neo4j repository: User and Subreddit are unique,
// Post and Comment accumulate, and relationships are created once per
// matched (user, target) pair.
type memoryStore struct {
	users      map[string]graph.User
	subreddits map[string]graph.Subreddit
	posts      []graph.Post
	comments   []graph.Comment
	edges      []edge

	writes  int
	failOn  int // 1-based write number that fails; 0 never fails
	failErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[string]graph.User),
		subreddits: make(map[string]graph.Subreddit),
	}
}

func (m *memoryStore) fail() error {
	m.writes++
	if m.failOn != 0 && m.writes == m.failOn {
		return m.failErr
	}
	return nil
}

func (m *memoryStore) CreateUser(_ context.Context, user graph.User) (graph.WriteOutcome, error) {
	if err := m.fail(); err != nil {
		return graph.Created, err
	}
	if _, ok := m.users[user.Username]; ok {
		return graph.AlreadyExists, nil
	}
	m.users[user.Username] = user
	return graph.Created, nil
}

func (m *memoryStore) CreateSubreddit(_ context.Context, subreddit graph.Subreddit) (graph.WriteOutcome, error) {
	if err := m.fail(); err != nil {
		return graph.Created, err
	}
	if _, ok := m.subreddits[subreddit.Name]; ok {
		return graph.AlreadyExists, nil
	}
	m.subreddits[subreddit.Name] = subreddit
	return graph.Created, nil
}

func (m *memoryStore) CreatePost(_ context.Context, post graph.Post) (graph.WriteOutcome, error) {
	if err := m.fail(); err != nil {
		return graph.Created, err
	}
	m.posts = append(m.posts, post)
	return graph.Created, nil
}

func (m *memoryStore) CreateComment(_ context.Context, comment graph.Comment) (graph.WriteOutcome, error) {
	if err := m.fail(); err != nil {
		return graph.Created, err
	}
	m.comments = append(m.comments, comment)
	return graph.Created, nil
}

func (m *memoryStore) CreateRelationship(_ context.Context, kind graph.RelationshipKind, username, target string) (int, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	if _, ok := m.users[username]; !ok {
		return 0, nil
	}

	matches := 0
	switch kind {
	case graph.RelSubscribes, graph.RelModerates:
		if _, ok := m.subreddits[target]; ok {
			matches = 1
		}
	case graph.RelPublished, graph.RelUpvotes, graph.RelDownvotes:
		for _, p := range m.posts {
			if p.Title == target {
				matches++
			}
		}
	case graph.RelCommented:
		for _, c := range m.comments {
			if c.Text == target {
				matches++
			}
		}
	}

	for n := 0; n < matches; n++ {
		m.edges = append(m.edges, edge{kind: kind, username: username, target: target})
	}
	return matches, nil
}

func (m *memoryStore) countEdges(kind graph.RelationshipKind, username, target string) int {
	total := 0
	for _, e := range m.edges {
		if e.kind == kind && e.username == username && e.target == target {
			total++
		}
	}
	return total
}
