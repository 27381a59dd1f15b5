package services

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/repository"
	"connectingbr/internal/testutil"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Lifecycle(t *testing.T) {
	conn := testutil.NewTestDB(t)
	svc := NewCategoryService(conn)
	ctx := context.Background()

	order := 5
	plumbing, err := svc.Create(ctx, CreateCategoryInput{Name: " Plumbing ", Order: &order})
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", plumbing.Name)
	assert.True(t, plumbing.IsActive)

	inactive := false
	hidden, err := svc.Create(ctx, CreateCategoryInput{Name: "Archived", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Plumbing"})
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	tooHigh := 1000
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Painting", Order: &tooHigh})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "order", ve.Field)

	first := 0
	electrical, err := svc.Create(ctx, CreateCategoryInput{Name: "Electrical", Order: &first})
	require.NoError(t, err)

	all, err := svc.FindAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{electrical.ID, plumbing.ID, hidden.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	active, err := svc.FindAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	renamed := "Electrician"
	updated, err := svc.Update(ctx, electrical.ID, UpdateCategoryInput{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Name)

	clash := "Plumbing"
	_, err = svc.Update(ctx, electrical.ID, UpdateCategoryInput{Name: &clash})
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	require.NoError(t, svc.Remove(ctx, hidden.ID))
	_, err = svc.FindOne(ctx, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryService_RemoveInUse(t *testing.T) {
	conn := testutil.NewTestDB(t)
	categories := NewCategoryService(conn)
	offerings := NewOfferingService(conn)
	ctx := context.Background()

	category := testutil.CreateCategory(t, conn)
	professional := testutil.CreateUser(t, conn, domain.RoleProfessional)
	_, err := offerings.Create(ctx, professional, CreateServiceInput{
		Name:        "Leak repair",
		Description: "Fixes leaking pipes and taps",
		Price:       80,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, categories.Remove(ctx, category.ID), domain.ErrCategoryInUse)
}

func TestOfferingService_CreateAndSearch(t *testing.T) {
	conn := testutil.NewTestDB(t)
	svc := NewOfferingService(conn)
	reviews := NewReviewService(conn)
	ctx := context.Background()

	category := testutil.CreateCategory(t, conn)
	good := testutil.CreateUser(t, conn, domain.RoleProfessional)
	average := testutil.CreateUser(t, conn, domain.RoleProfessional)
	client := testutil.CreateUser(t, conn, domain.RoleClient)
	admin := testutil.CreateUser(t, conn, domain.RoleAdmin)

	_, err := reviews.Create(ctx, client.ID, CreateReviewInput{ProfessionalID: good.ID, Rating: 5})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, client.ID, CreateReviewInput{ProfessionalID: average.ID, Rating: 3})
	require.NoError(t, err)

	wiring, err := svc.Create(ctx, good, CreateServiceInput{Name: "Home wiring", Description: "Complete home electrical wiring", Price: 300, CategoryID: category.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, wiring.ID)
	assert.Equal(t, good.ID, wiring.ProviderID)

	socket, err := svc.Create(ctx, admin, CreateServiceInput{Name: "Socket install", Description: "Install a new wall socket", Price: 50, CategoryID: category.ID, ProviderID: &average.ID})
	require.NoError(t, err)
	assert.Equal(t, average.ID, socket.ProviderID)

	_, err = svc.Create(ctx, client, CreateServiceInput{Name: "Nope", Description: "Clients cannot offer this", Price: 1, CategoryID: category.ID})
	assert.ErrorIs(t, err, domain.ErrCannotOffer)

	_, err = svc.Create(ctx, good, CreateServiceInput{Name: "Stolen", Description: "Published for someone else", Price: 1, CategoryID: category.ID, ProviderID: &average.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, admin, CreateServiceInput{Name: "Client job", Description: "Provider must be a professional", Price: 1, CategoryID: category.ID, ProviderID: &client.ID})
	assert.ErrorIs(t, err, domain.ErrCannotOffer)

	_, err = svc.Create(ctx, good, CreateServiceInput{Name: "Orphan", Description: "Points at a missing category", Price: 1, CategoryID: 999})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	all, err := svc.Search(ctx, repository.ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, wiring.ID, all[0].ID, "best rated provider first")

	minRating := 4.0
	rated, err := svc.Search(ctx, repository.ServiceFilter{MinRating: &minRating})
	require.NoError(t, err)
	require.Len(t, rated, 1)
	assert.Equal(t, wiring.ID, rated[0].ID)

	maxPrice := 100.0
	cheap, err := svc.Search(ctx, repository.ServiceFilter{MaxPrice: &maxPrice, Query: "SOCKET"})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, socket.ID, cheap[0].ID)
}

func TestOfferingService_UpdateAndRemove(t *testing.T) {
	conn := testutil.NewTestDB(t)
	svc := NewOfferingService(conn)
	ctx := context.Background()

	category := testutil.CreateCategory(t, conn)
	owner := testutil.CreateUser(t, conn, domain.RoleProfessional)
	other := testutil.CreateUser(t, conn, domain.RoleProfessional)
	admin := testutil.CreateUser(t, conn, domain.RoleAdmin)

	offering, err := svc.Create(ctx, owner, CreateServiceInput{Name: "Garden care", Description: "Weekly garden maintenance", Price: 40, CategoryID: category.ID})
	require.NoError(t, err)

	price := 55.5
	updated, err := svc.Update(ctx, owner, offering.ID, UpdateServiceInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 55.5, updated.Price)

	negative := -1.0
	_, err = svc.Update(ctx, owner, offering.ID, UpdateServiceInput{Price: &negative})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, other, offering.ID, UpdateServiceInput{Price: &price})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Remove(ctx, other, offering.ID), domain.ErrForbidden)

	require.NoError(t, svc.Remove(ctx, admin, offering.ID))
	_, err = svc.FindOne(ctx, offering.ID)
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}
