package usecase_test

import (
	"context"
	"errors"
	"sync"

	slacksvc "github.com/secmon-lab/qainfo/pkg/service/slack"
	goslack "github.com/slack-go/slack"
)

type postedMessage struct {
	Token     string
	ChannelID string
	Text      string
}

type addedReaction struct {
	Token     string
	ChannelID string
	TS        string
	Name      string
}

type openedView struct {
	TriggerID string
	View      goslack.ModalViewRequest
}

// mockSlackService records calls. The bot token is recorded as "bot".
type mockSlackService struct {
	mu sync.Mutex

	users        map[string]*slacksvc.User
	reactions    map[string][]string
	reactionsErr error
	identity     *slacksvc.Identity
	authTestErr  error
	postErr      error
	openViewErr  error

	posted    []postedMessage
	added     []addedReaction
	views     []openedView
	userInfos []string
}

func newMockSlackService() *mockSlackService {
	return &mockSlackService{
		users:     map[string]*slacksvc.User{},
		reactions: map[string][]string{},
	}
}

func (m *mockSlackService) addUser(id, realName string) {
	m.users[id] = &slacksvc.User{ID: id, Name: id, RealName: realName}
}

func (m *mockSlackService) getUserInfo(userID string) (*slacksvc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userInfos = append(m.userInfos, userID)

	user, ok := m.users[userID]
	if !ok {
		return nil, errors.New("user_not_found")
	}
	copied := *user
	return &copied, nil
}

func (m *mockSlackService) postMessage(token, channelID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.postErr != nil {
		return m.postErr
	}
	m.posted = append(m.posted, postedMessage{Token: token, ChannelID: channelID, Text: text})
	return nil
}

func (m *mockSlackService) GetUserInfo(ctx context.Context, userID string) (*slacksvc.User, error) {
	return m.getUserInfo(userID)
}

func (m *mockSlackService) PostMessage(ctx context.Context, channelID, text string) error {
	return m.postMessage("bot", channelID, text)
}

func (m *mockSlackService) OpenView(ctx context.Context, triggerID string, view goslack.ModalViewRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openViewErr != nil {
		return m.openViewErr
	}
	m.views = append(m.views, openedView{TriggerID: triggerID, View: view})
	return nil
}

func (m *mockSlackService) AsUser(token string) slacksvc.UserService {
	return &mockUserService{parent: m, token: token}
}

func (m *mockSlackService) Posted() []postedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]postedMessage(nil), m.posted...)
}

func (m *mockSlackService) Added() []addedReaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]addedReaction(nil), m.added...)
}

func (m *mockSlackService) Views() []openedView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]openedView(nil), m.views...)
}

type mockUserService struct {
	parent *mockSlackService
	token  string
}

func (u *mockUserService) AuthTest(ctx context.Context) (*slacksvc.Identity, error) {
	if u.parent.authTestErr != nil {
		return nil, u.parent.authTestErr
	}
	if u.parent.identity == nil {
		return &slacksvc.Identity{}, nil
	}
	identity := *u.parent.identity
	return &identity, nil
}

func (u *mockUserService) GetUserInfo(ctx context.Context, userID string) (*slacksvc.User, error) {
	return u.parent.getUserInfo(userID)
}

func (u *mockUserService) ListReactions(ctx context.Context, channelID, ts string) ([]string, error) {
	if u.parent.reactionsErr != nil {
		return nil, u.parent.reactionsErr
	}
	return u.parent.reactions[channelID+"/"+ts], nil
}

func (u *mockUserService) AddReaction(ctx context.Context, channelID, ts, name string) error {
	u.parent.mu.Lock()
	defer u.parent.mu.Unlock()
	u.parent.added = append(u.parent.added, addedReaction{Token: u.token, ChannelID: channelID, TS: ts, Name: name})
	return nil
}

func (u *mockUserService) PostMessage(ctx context.Context, channelID, text string) error {
	return u.parent.postMessage(u.token, channelID, text)
}
