package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func profileRows(profile *models.DealerProfile) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "business_id", "business_name", "address", "phone", "website",
		"logo_url", "images", "rating", "about_us", "favorites", "services", "created_at", "updated_at",
	}).AddRow(
		profile.ID.String(), profile.UserID.String(), profile.BusinessID, profile.BusinessName, profile.Address,
		profile.Phone, profile.Website, profile.LogoURL, "{}", profile.Rating,
		profile.AboutUs, "{}", `{servicing,financing}`, profile.CreatedAt, profile.UpdatedAt,
	)
}

func TestDealerProfileRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the profile", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		profile := models.NewDealerProfile(uuid.New())
		profile.BusinessName = "Prime Motors"

		mock.ExpectExec("INSERT INTO dealer_profiles").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, profile))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second profile for a user becomes ErrDuplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		profile := models.NewDealerProfile(uuid.New())

		mock.ExpectExec("INSERT INTO dealer_profiles").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "dealer_profiles_user_id_key"})

		err := repo.Create(ctx, profile)
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
	})
}

func TestDealerProfileRepositoryGetByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("scans array columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		profile := models.NewDealerProfile(uuid.New())
		profile.BusinessName = "Prime Motors"

		mock.ExpectQuery("FROM dealer_profiles").
			WithArgs(profile.UserID).
			WillReturnRows(profileRows(profile))

		got, err := repo.GetByUserID(ctx, profile.UserID)
		require.NoError(t, err)
		assert.Equal(t, profile.UserID, got.UserID)
		assert.Equal(t, "Prime Motors", got.BusinessName)
		assert.Equal(t, []string{"servicing", "financing"}, got.Services)
		assert.Empty(t, got.Images)
	})

	t.Run("no row becomes ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		userID := uuid.New()

		mock.ExpectQuery("FROM dealer_profiles").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByUserID(ctx, userID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestDealerProfileRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates by user id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		profile := models.NewDealerProfile(uuid.New())

		mock.ExpectExec("UPDATE dealer_profiles").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, profile))
	})

	t.Run("zero rows affected becomes ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		profile := models.NewDealerProfile(uuid.New())

		mock.ExpectExec("UPDATE dealer_profiles").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, profile)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestDealerProfileRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by user id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		userID := uuid.New()

		mock.ExpectExec("DELETE FROM dealer_profiles").
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteByUserID(ctx, userID))
	})

	t.Run("zero rows affected becomes ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDealerProfileRepository(db, zap.NewNop())
		userID := uuid.New()

		mock.ExpectExec("DELETE FROM dealer_profiles").
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByUserID(ctx, userID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
