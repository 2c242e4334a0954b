package http_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/secmon-lab/qainfo/pkg/domain/model"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/slack-go/slack/slackevents"
)

// mockUseCase records calls and signals them on done
type mockUseCase struct {
	mu sync.Mutex

	commandReply string
	oauthErr     error

	events      []*slackevents.EventsAPIEvent
	commands    []*slackmodel.CommandRequest
	shortcuts   []*slackmodel.ShortcutRequest
	submissions []*slackmodel.Submission
	codes       []string

	done chan struct{}
}

func newMockUseCase() *mockUseCase {
	return &mockUseCase{done: make(chan struct{}, 10)}
}

func (m *mockUseCase) record(f func()) {
	m.mu.Lock()
	f()
	m.mu.Unlock()
	m.done <- struct{}{}
}

func (m *mockUseCase) wait(t *testing.T) {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(3 * time.Second):
		t.Fatal("use case was not called")
	}
}

func (m *mockUseCase) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	m.record(func() { m.events = append(m.events, event) })
	return nil
}

func (m *mockUseCase) HandleCommand(ctx context.Context, req *slackmodel.CommandRequest) string {
	m.record(func() { m.commands = append(m.commands, req) })
	return m.commandReply
}

func (m *mockUseCase) HandleShortcut(ctx context.Context, req *slackmodel.ShortcutRequest) error {
	m.record(func() { m.shortcuts = append(m.shortcuts, req) })
	return nil
}

func (m *mockUseCase) HandleSubmission(ctx context.Context, sub *slackmodel.Submission) error {
	m.record(func() { m.submissions = append(m.submissions, sub) })
	return nil
}

func (m *mockUseCase) HandleOAuthCallback(ctx context.Context, code string) (*model.UserRecord, error) {
	m.record(func() { m.codes = append(m.codes, code) })
	if m.oauthErr != nil {
		return nil, m.oauthErr
	}
	return &model.UserRecord{UserID: "U123", AccessToken: "xoxp-1"}, nil
}
