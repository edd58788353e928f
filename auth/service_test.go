package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/users"
)

// fakeUserStore is an in-memory users.Store keyed by username.
type fakeUserStore struct {
	byUsername map[string]*users.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUsername: make(map[string]*users.User)}
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*users.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) Insert(_ context.Context, user *users.User) error {
	user.ID = primitive.NewObjectID()
	f.byUsername[user.Username] = user
	return nil
}

// fakeCartCreator counts created carts and can be made to fail.
type fakeCartCreator struct {
	created int
	fail    error
}

func (f *fakeCartCreator) InsertEmpty(context.Context) (primitive.ObjectID, error) {
	if f.fail != nil {
		return primitive.NilObjectID, f.fail
	}
	f.created++
	return primitive.NewObjectID(), nil
}

func newTestService() (*Service, *fakeUserStore, *fakeCartCreator, *TokenCodec) {
	store := newFakeUserStore()
	carts := &fakeCartCreator{}
	codec := NewTokenCodec("jwt-secret", time.Hour)
	svc := NewService(store, carts, NewPasswordHasher(4), codec)
	return svc, store, carts, codec
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Nome:     "Anna",
		Cognome:  "Rossi",
		Username: "ann",
		Email:    "ann@example.com",
		Password: "strongpassword123",
	}
}

func TestService_Register(t *testing.T) {
	svc, store, carts, _ := newTestService()

	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	user, err := store.FindByUsername(context.Background(), "ann")
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.Nome)
	assert.NotEqual(t, "strongpassword123", user.HashedPassword, "password must be stored hashed")
	assert.False(t, user.CartID.IsZero(), "registration must bind a cart")
	assert.Equal(t, 1, carts.created)
}

func TestService_Register_Duplicate(t *testing.T) {
	svc, _, carts, _ := newTestService()

	require.NoError(t, svc.Register(context.Background(), registerRequest()))
	err := svc.Register(context.Background(), registerRequest())

	assert.True(t, apperror.IsConflictError(err))
	assert.Equal(t, 1, carts.created, "no second cart for a rejected registration")
}

func TestService_Register_CartCreationFailure(t *testing.T) {
	svc, store, carts, _ := newTestService()
	carts.fail = apperror.NewDatabaseError("store down", errors.New("boom"))

	err := svc.Register(context.Background(), registerRequest())
	require.Error(t, err)

	// No user without a cart: the identity insert never ran.
	_, err = store.FindByUsername(context.Background(), "ann")
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Login(t *testing.T) {
	svc, store, _, codec := newTestService()
	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	token, err := svc.Login(context.Background(), LoginRequest{Username: "ann", Password: "strongpassword123"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ann", claims.Username)

	user, err := store.FindByUsername(context.Background(), "ann")
	require.NoError(t, err)
	assert.Equal(t, user.CartID.Hex(), claims.Cart, "cart reference denormalized into the claim")
}

func TestService_Login_UniformFailure(t *testing.T) {
	svc, _, _, _ := newTestService()
	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	_, unknownUser := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "strongpassword123"})
	_, wrongPassword := svc.Login(context.Background(), LoginRequest{Username: "ann", Password: "wrong"})

	require.Error(t, unknownUser)
	require.Error(t, wrongPassword)

	// Identical outcome whether the username or the password was wrong.
	a, ok := apperror.FromError(unknownUser)
	require.True(t, ok)
	b, ok := apperror.FromError(wrongPassword)
	require.True(t, ok)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, a.Code(), b.Code())
	assert.Equal(t, a.StatusCode(), b.StatusCode())
}
