package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/interfaces"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{
		client: client,
	}
}

// userDoc is the Firestore persistence model. The document ID is user_id.
type userDoc struct {
	UserID       string    `firestore:"user_id"`
	TeamID       string    `firestore:"team_id"`
	TeamName     string    `firestore:"team_name"`
	AccessToken  string    `firestore:"access_token"`
	EnterpriseID string    `firestore:"enterprise_id"`
	Scope        string    `firestore:"scope"`
	URL          string    `firestore:"url"`
	Team         string    `firestore:"team"`
	User         string    `firestore:"user"`
	RealName     string    `firestore:"real_name"`
	PreMessage   string    `firestore:"preMessage"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

// UsersCollectionName returns the collection holding user records
func UsersCollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + usersCollection
	}
	return usersCollection
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(UsersCollectionName(r.collectionPrefix))
}

func (r *userRepository) toDoc(user *model.UserRecord) *userDoc {
	return &userDoc{
		UserID:       string(user.UserID),
		TeamID:       user.TeamID,
		TeamName:     user.TeamName,
		AccessToken:  user.AccessToken,
		EnterpriseID: user.EnterpriseID,
		Scope:        user.Scope,
		URL:          user.URL,
		Team:         user.Team,
		User:         user.User,
		RealName:     user.RealName,
		PreMessage:   user.PreMessage,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (r *userRepository) fromDoc(doc *userDoc) *model.UserRecord {
	return &model.UserRecord{
		UserID:       types.SlackUserID(doc.UserID),
		TeamID:       doc.TeamID,
		TeamName:     doc.TeamName,
		AccessToken:  doc.AccessToken,
		EnterpriseID: doc.EnterpriseID,
		Scope:        doc.Scope,
		URL:          doc.URL,
		Team:         doc.Team,
		User:         doc.User,
		RealName:     doc.RealName,
		PreMessage:   doc.PreMessage,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// Get retrieves a user record by ID. Returns (nil, nil) if not found.
func (r *userRepository) Get(ctx context.Context, userID types.SlackUserID) (*model.UserRecord, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	doc, err := r.collection().Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("user_id", userID))
	}

	var data userDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("user_id", userID))
	}

	return r.fromDoc(&data), nil
}

// Put creates or overwrites a user record
func (r *userRepository) Put(ctx context.Context, user *model.UserRecord) error {
	if user == nil || user.UserID == "" {
		return goerr.New("user ID is empty")
	}

	doc := r.toDoc(user)
	doc.UpdatedAt = time.Now().UTC()

	if _, err := r.collection().Doc(user.UserID.String()).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("user_id", user.UserID))
	}

	user.UpdatedAt = doc.UpdatedAt
	return nil
}

// UpdatePreMessage sets preMessage in a transaction. Returns (nil, nil) if
// the user has no record.
func (r *userRepository) UpdatePreMessage(ctx context.Context, userID types.SlackUserID, preMessage string) (*model.UserRecord, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	docRef := r.collection().Doc(userID.String())
	var updated *model.UserRecord

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		updated = nil

		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return goerr.Wrap(err, "failed to get user")
		}

		var data userDoc
		if err := doc.DataTo(&data); err != nil {
			return goerr.Wrap(err, "failed to unmarshal user")
		}

		data.PreMessage = preMessage
		data.UpdatedAt = time.Now().UTC()

		if err := tx.Update(docRef, []firestore.Update{
			{Path: "preMessage", Value: data.PreMessage},
			{Path: "updated_at", Value: data.UpdatedAt},
		}); err != nil {
			return goerr.Wrap(err, "failed to update preMessage")
		}

		updated = r.fromDoc(&data)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run preMessage transaction", goerr.V("user_id", userID))
	}

	return updated, nil
}

// List retrieves all user records ordered by user ID
func (r *userRepository) List(ctx context.Context) ([]*model.UserRecord, error) {
	return r.collect(ctx, r.collection().OrderBy(firestore.DocumentID, firestore.Asc))
}

// ListByTeam retrieves records of the team ordered by updated_at descending.
// The query needs the (team_id, updated_at) composite index created by the
// migrate command.
func (r *userRepository) ListByTeam(ctx context.Context, teamID string) ([]*model.UserRecord, error) {
	if teamID == "" {
		return nil, goerr.New("team ID is empty")
	}

	query := r.collection().
		Where("team_id", "==", teamID).
		OrderBy("updated_at", firestore.Desc)

	users, err := r.collect(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users by team", goerr.V("team_id", teamID))
	}
	return users, nil
}

func (r *userRepository) collect(ctx context.Context, query firestore.Query) ([]*model.UserRecord, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*model.UserRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var data userDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("doc_id", doc.Ref.ID))
		}
		users = append(users, r.fromDoc(&data))
	}

	return users, nil
}
