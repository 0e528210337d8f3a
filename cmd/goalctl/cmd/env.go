package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/templui/goalflow/internal/client"
	"github.com/templui/goalflow/internal/model"
)

var (
	errNoGoal        = errors.New("no goal matches")
	errAmbiguousGoal = errors.New("goal reference is ambiguous")
)

// Env carries the connection settings shared by every API command.
type Env struct {
	URL      string
	Email    string
	Password string
}

// Connect returns a client with a live session.
func (e *Env) Connect(ctx context.Context) (*client.Client, error) {
	if e.Email == "" || e.Password == "" {
		return nil, errors.New("--email and --password are required or set GOALFLOW_EMAIL and GOALFLOW_PASSWORD env")
	}

	c, err := client.New(e.URL)
	if err != nil {
		return nil, err
	}
	if err := c.Login(ctx, e.Email, e.Password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return c, nil
}

// resolveGoal finds a goal by full id or unique id prefix.
func resolveGoal(goals []model.Goal, ref string) (model.Goal, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return model.Goal{}, fmt.Errorf("%w %q", errNoGoal, ref)
	}

	var matches []model.Goal
	for _, g := range goals {
		if g.ID == ref {
			return g, nil
		}
		if strings.HasPrefix(g.ID, ref) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 0:
		return model.Goal{}, fmt.Errorf("%w %q", errNoGoal, ref)
	case 1:
		return matches[0], nil
	}
	return model.Goal{}, fmt.Errorf("%w: %q matches %d goals", errAmbiguousGoal, ref, len(matches))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
