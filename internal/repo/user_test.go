package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/premium_service/internal/db/dbtest"
	"github.com/Skotchmaster/premium_service/internal/models"
)

func TestUpsertToken_CreatesThenOverwritesToken(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t))

	require.NoError(t, r.UpsertToken(ctx, 10, "first"))
	created, err := r.GetUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "first", created.Token)
	assert.EqualValues(t, 0, created.Premium)

	require.NoError(t, r.DB.Model(&models.User{}).Where("id = ?", 10).UpdateColumn("premium", 4).Error)

	require.NoError(t, r.UpsertToken(ctx, 10, "second"))
	updated, err := r.GetUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Token)
	assert.EqualValues(t, 4, updated.Premium)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	total, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestGetUser_NotFound(t *testing.T) {
	r := New(dbtest.New(t))

	_, err := r.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListUsers_OrderedByID(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t))

	for _, id := range []int64{30, 10, 20, 50, 40} {
		require.NoError(t, r.UpsertToken(ctx, id, "t"))
	}

	page, err := r.ListUsers(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.EqualValues(t, 10, page[0].ID)
	assert.EqualValues(t, 20, page[1].ID)

	page, err = r.ListUsers(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.EqualValues(t, 50, page[0].ID)

	page, err = r.ListUsers(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestSetPremium(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t))
	require.NoError(t, r.UpsertToken(ctx, 1, "t"))

	user, err := r.SetPremium(ctx, 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 12, user.Premium)

	// same value again still finds the row
	user, err = r.SetPremium(ctx, 1, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 12, user.Premium)

	_, err = r.SetPremium(ctx, 2, 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t))
	require.NoError(t, r.UpsertToken(ctx, 1, "t"))

	require.NoError(t, r.DeleteUser(ctx, 1))
	_, err := r.GetUser(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, r.DeleteUser(ctx, 1), gorm.ErrRecordNotFound)
}

func TestConsumePremium(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t))
	require.NoError(t, r.UpsertToken(ctx, 1, "t"))
	_, err := r.SetPremium(ctx, 1, 2)
	require.NoError(t, err)

	left, err := r.ConsumePremium(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)

	left, err = r.ConsumePremium(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, left)

	_, err = r.ConsumePremium(ctx, 1)
	assert.ErrorIs(t, err, ErrNoPremiumLeft)

	_, err = r.ConsumePremium(ctx, 99)
	assert.ErrorIs(t, err, ErrNoPremiumLeft)

	user, err := r.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, user.Premium)
}

func TestConsumePremium_ConcurrentNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t))
	require.NoError(t, r.UpsertToken(ctx, 1, "t"))
	_, err := r.SetPremium(ctx, 1, 5)
	require.NoError(t, err)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		exhausted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.ConsumePremium(ctx, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrNoPremiumLeft):
				exhausted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, workers-5, exhausted)

	user, err := r.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, user.Premium)
}
