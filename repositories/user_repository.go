package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserEmailTaken = errors.New("email address is already in use")
)

const userCollection = "users"

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type docstoreUserRepository struct {
	store docstore.Store
}

func NewDocstoreUserRepository(store docstore.Store) UserRepository {
	return &docstoreUserRepository{store: store}
}

// userDocument is the persisted shape; the password hash never leaves the
// repository through the User json tags, so it is carried explicitly here.
type userDocument struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *docstoreUserRepository) Create(ctx context.Context, user *models.User) error {
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	if existing != nil {
		return ErrUserEmailTaken
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	data, err := json.Marshal(userDocument{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	doc := &docstore.Document{ID: user.ID, Owner: user.ID, Data: data}
	if err := r.store.Put(ctx, userCollection, doc); err != nil {
		return r.translate(err)
	}
	return nil
}

func (r *docstoreUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.store.Get(ctx, userCollection, id)
	if err != nil {
		return nil, r.translate(err)
	}
	return decodeUser(doc.Data)
}

func (r *docstoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := r.store.FindByField(ctx, userCollection, "email", email)
	if err != nil {
		return nil, r.translate(err)
	}
	if len(docs) == 0 {
		return nil, ErrUserNotFound
	}
	return decodeUser(docs[0].Data)
}

func (r *docstoreUserRepository) translate(err error) error {
	if errors.Is(err, docstore.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %v", ErrOffline, err)
	}
	if errors.Is(err, docstore.ErrDocumentNotFound) {
		return ErrUserNotFound
	}
	return err
}

func decodeUser(data []byte) (*models.User, error) {
	var doc userDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &models.User{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
