package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModel "fitlink-backend/internal/domains/application/model"
	"fitlink-backend/internal/domains/chat/model"
	profilemodel "fitlink-backend/internal/domains/profile/model"
)

// ============================================
// Fakes
// ============================================

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*model.Conversation
	messages      []*model.Message
	sendErr       error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*model.Conversation)}
}

func (r *fakeConversationRepo) GetOrCreate(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error) {
	id := model.ConversationID(a, b)
	if c, ok := r.conversations[id]; ok {
		return c, nil
	}
	lo, hi := model.SortPair(a, b)
	c := &model.Conversation{
		ID:           id,
		ParticipantA: lo,
		ParticipantB: hi,
		CreatedAt:    time.Now(),
	}
	r.conversations[id] = c
	return c, nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, model.ErrConversationNotFound
	}
	return c, nil
}

func (r *fakeConversationRepo) ListByParticipant(ctx context.Context, profileID uuid.UUID) ([]*model.Conversation, error) {
	var out []*model.Conversation
	for _, c := range r.conversations {
		if c.HasParticipant(profileID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) SendMessage(ctx context.Context, msg *model.Message, preview string, recipientID uuid.UUID) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	c, ok := r.conversations[msg.ConversationID]
	if !ok {
		return model.ErrConversationNotFound
	}
	r.messages = append(r.messages, msg)
	now := msg.CreatedAt
	c.LastMessageAt = &now
	c.LastMessagePreview = preview
	if c.ParticipantA == recipientID {
		c.UnreadA++
	} else {
		c.UnreadB++
	}
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID uuid.UUID, cursor string, limit int) (*model.MessagePage, error) {
	page := &model.MessagePage{}
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].ConversationID == conversationID {
			page.Messages = append(page.Messages, &model.MessageView{Message: *r.messages[i]})
		}
	}
	return page, nil
}

func (r *fakeConversationRepo) MarkRead(ctx context.Context, conversationID, profileID uuid.UUID) error {
	c, ok := r.conversations[conversationID]
	if !ok {
		return model.ErrConversationNotFound
	}
	if c.ParticipantA == profileID {
		c.UnreadA = 0
	} else {
		c.UnreadB = 0
	}
	return nil
}

type fakeProfileDir struct {
	byUser map[uuid.UUID]*profilemodel.Profile
	byID   map[uuid.UUID]*profilemodel.Profile
}

func newFakeProfileDir() *fakeProfileDir {
	return &fakeProfileDir{
		byUser: make(map[uuid.UUID]*profilemodel.Profile),
		byID:   make(map[uuid.UUID]*profilemodel.Profile),
	}
}

func (f *fakeProfileDir) add(p *profilemodel.Profile) {
	f.byUser[p.UserID] = p
	f.byID[p.ID] = p
}

func (f *fakeProfileDir) GetByUserID(ctx context.Context, userID uuid.UUID) (*profilemodel.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, profilemodel.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileDir) GetByID(ctx context.Context, id uuid.UUID) (*profilemodel.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, profilemodel.ErrProfileNotFound
	}
	return p, nil
}

type fakeApplications struct {
	byID map[uuid.UUID]*appModel.Application
}

func (f *fakeApplications) GetByID(ctx context.Context, id uuid.UUID) (*appModel.Application, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appModel.ErrApplicationNotFound
	}
	return a, nil
}

type captureEnqueuer struct {
	tasks []*asynq.Task
}

func (f *captureEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

// ============================================
// Fixture
// ============================================

type chatFixture struct {
	svc   ChatService
	repo  *fakeConversationRepo
	apps  *fakeApplications
	tasks *captureEnqueuer

	instructor *profilemodel.Profile
	studio     *profilemodel.Profile
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	profiles := newFakeProfileDir()
	f := &chatFixture{
		repo:  newFakeConversationRepo(),
		apps:  &fakeApplications{byID: make(map[uuid.UUID]*appModel.Application)},
		tasks: &captureEnqueuer{},
	}

	f.instructor = &profilemodel.Profile{ID: uuid.New(), UserID: uuid.New(), UserType: profilemodel.TypeInstructor}
	f.studio = &profilemodel.Profile{ID: uuid.New(), UserID: uuid.New(), UserType: profilemodel.TypeStudio}
	profiles.add(f.instructor)
	profiles.add(f.studio)

	f.svc = NewChatService(f.repo, profiles, f.apps, f.tasks)
	return f
}

func (f *chatFixture) openConversation(t *testing.T) *model.Conversation {
	t.Helper()
	c, err := f.svc.OpenConversation(context.Background(), f.instructor.UserID, &model.OpenConversationRequest{
		ParticipantID: f.studio.ID.String(),
	})
	require.NoError(t, err)
	return c
}

// ============================================
// Tests
// ============================================

func TestOpenConversationFirstContact(t *testing.T) {
	f := newChatFixture(t)

	c := f.openConversation(t)
	assert.True(t, c.HasParticipant(f.instructor.ID))
	assert.True(t, c.HasParticipant(f.studio.ID))

	// Opening from the other side lands on the same thread.
	again, err := f.svc.OpenConversation(context.Background(), f.studio.UserID, &model.OpenConversationRequest{
		ParticipantID: f.instructor.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
	assert.Len(t, f.repo.conversations, 1)
}

func TestOpenConversationWithSelf(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.OpenConversation(context.Background(), f.instructor.UserID, &model.OpenConversationRequest{
		ParticipantID: f.instructor.ID.String(),
	})
	assert.ErrorIs(t, err, model.ErrSelfConversation)
}

func TestSendTextMessage(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	msg, err := f.svc.SendMessage(context.Background(), f.instructor.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: "  Is the Saturday slot still open?  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Is the Saturday slot still open?", msg.Body)
	assert.Equal(t, f.instructor.ID, msg.SenderID)

	// The studio's unread counter went up, not the sender's.
	stored := f.repo.conversations[c.ID]
	assert.Equal(t, 1, stored.UnreadFor(f.studio.ID))
	assert.Equal(t, 0, stored.UnreadFor(f.instructor.ID))
	assert.Equal(t, "Is the Saturday slot still open?", stored.LastMessagePreview)

	require.Len(t, f.tasks.tasks, 1)
}

func TestSendTextMessageRequiresBody(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	_, err := f.svc.SendMessage(context.Background(), f.instructor.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: "   \n\t ",
	})
	assert.ErrorIs(t, err, model.ErrEmptyMessage)
	assert.Empty(t, f.repo.messages)
}

func TestSendOfferRequiresApplication(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	_, err := f.svc.SendMessage(context.Background(), f.studio.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindOffer,
	})
	assert.ErrorIs(t, err, model.ErrApplicationRequired)
}

func TestSendOfferLinksApplication(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	app := &appModel.Application{
		ID:          uuid.New(),
		ApplicantID: f.instructor.ID,
		StudioID:    f.studio.ID,
		Status:      appModel.StatusOffered,
	}
	f.apps.byID[app.ID] = app

	msg, err := f.svc.SendMessage(context.Background(), f.studio.UserID, c.ID, &model.SendMessageRequest{
		Kind:          model.KindOffer,
		ApplicationID: app.ID.String(),
	})
	require.NoError(t, err)

	require.NotNil(t, msg.ApplicationID)
	assert.Equal(t, app.ID, *msg.ApplicationID)
	assert.Equal(t, "[offer]", f.repo.conversations[c.ID].LastMessagePreview)
}

func TestSendOfferRejectsForeignApplication(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	// Application between the studio and some other instructor.
	app := &appModel.Application{
		ID:          uuid.New(),
		ApplicantID: uuid.New(),
		StudioID:    f.studio.ID,
	}
	f.apps.byID[app.ID] = app

	_, err := f.svc.SendMessage(context.Background(), f.studio.UserID, c.ID, &model.SendMessageRequest{
		Kind:          model.KindOffer,
		ApplicationID: app.ID.String(),
	})
	assert.ErrorIs(t, err, model.ErrNotParticipant)
}

func TestSendMessageFailurePropagatesWithoutNotification(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)
	f.repo.sendErr = errors.New("connection reset")

	_, err := f.svc.SendMessage(context.Background(), f.instructor.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: "hello",
	})
	require.Error(t, err)

	// Nothing was recorded and nobody gets notified of a message that
	// never landed.
	assert.Empty(t, f.repo.messages)
	assert.Empty(t, f.tasks.tasks)
}

func TestSendMessageOutsiderRejected(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	_, err := f.svc.SendMessage(context.Background(), uuid.New(), c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: "let me in",
	})
	assert.ErrorIs(t, err, model.ErrNotParticipant)
}

func TestPreviewTruncation(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	long := strings.Repeat("a", previewLength+40)
	_, err := f.svc.SendMessage(context.Background(), f.instructor.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: long,
	})
	require.NoError(t, err)

	assert.Len(t, f.repo.conversations[c.ID].LastMessagePreview, previewLength)
}

// Truncation must never split a multi-byte rune and store broken UTF-8.
func TestPreviewTruncationMultiByte(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	long := strings.Repeat("é", previewLength+40)
	_, err := f.svc.SendMessage(context.Background(), f.instructor.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: long,
	})
	require.NoError(t, err)

	got := f.repo.conversations[c.ID].LastMessagePreview
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, previewLength, utf8.RuneCountInString(got))
}

func TestMarkReadResetsOwnCounterOnly(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	for _, body := range []string{"one", "two"} {
		_, err := f.svc.SendMessage(context.Background(), f.instructor.UserID, c.ID, &model.SendMessageRequest{
			Kind: model.KindText,
			Body: body,
		})
		require.NoError(t, err)
	}
	_, err := f.svc.SendMessage(context.Background(), f.studio.UserID, c.ID, &model.SendMessageRequest{
		Kind: model.KindText,
		Body: "three",
	})
	require.NoError(t, err)

	stored := f.repo.conversations[c.ID]
	require.Equal(t, 2, stored.UnreadFor(f.studio.ID))
	require.Equal(t, 1, stored.UnreadFor(f.instructor.ID))

	require.NoError(t, f.svc.MarkRead(context.Background(), f.studio.UserID, c.ID))

	assert.Equal(t, 0, stored.UnreadFor(f.studio.ID))
	assert.Equal(t, 1, stored.UnreadFor(f.instructor.ID))
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	f := newChatFixture(t)
	c := f.openConversation(t)

	_, err := f.svc.ListMessages(context.Background(), uuid.New(), c.ID, "", 50)
	assert.ErrorIs(t, err, model.ErrNotParticipant)
}
