package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/okanv/likeledger/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB runs the repositories against a real SQL dialect so the
// unique indexes and gorm error translation behave as they do in
// production.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Like{}))
	return db
}

func TestCreateMultipleLocalAccounts(t *testing.T) {
	repo := NewPostgresAccountRepository(openTestDB(t))

	// Local signups carry no Firebase identity. Two of them must not
	// collide on the firebase_uid unique index.
	require.NoError(t, repo.CreateAccount(&models.Account{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: "addr-alice",
	}))
	require.NoError(t, repo.CreateAccount(&models.Account{
		Name:    "Bob",
		Email:   "bob@example.com",
		Address: "addr-bob",
	}))

	alice, err := repo.GetAccountByEmail("alice@example.com")
	require.NoError(t, err)
	require.Nil(t, alice.FirebaseUID)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	repo := NewPostgresAccountRepository(openTestDB(t))

	require.NoError(t, repo.CreateAccount(&models.Account{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: "addr-alice",
	}))
	err := repo.CreateAccount(&models.Account{
		Name:    "Impostor",
		Email:   "alice@example.com",
		Address: "addr-impostor",
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestLinkFirebaseUID(t *testing.T) {
	repo := NewPostgresAccountRepository(openTestDB(t))

	account := &models.Account{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: "addr-alice",
	}
	require.NoError(t, repo.CreateAccount(account))

	uid := "firebase-uid-1"
	account.FirebaseUID = &uid
	require.NoError(t, repo.UpdateAccount(account))

	found, err := repo.GetAccountByFirebaseUID(uid)
	require.NoError(t, err)
	require.Equal(t, account.ID, found.ID)
}

func TestRecordLikeAbsorbsReplay(t *testing.T) {
	repo := NewPostgresLikeRepository(openTestDB(t))

	require.NoError(t, repo.RecordLike(&models.Like{OwnerAddress: "alice", LikerAddress: "bob"}))
	require.NoError(t, repo.RecordLike(&models.Like{OwnerAddress: "alice", LikerAddress: "bob"}))

	count, err := repo.GetLikesCountByOwner("alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	liked, err := repo.HasLiked("alice", "bob")
	require.NoError(t, err)
	require.True(t, liked)
}
