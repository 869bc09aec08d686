package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/category/store"
	"github.com/MrJamesThe3rd/pocket/internal/database/dbtest"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.SQLite(t))

	food := &category.Category{Name: "Food", Icon: category.IconRestaurant, Color: 0xFFFF9800, Type: category.TypeExpense}
	salary := &category.Category{Name: "Salary", Icon: category.IconAccountBalance, Color: 0xFF4CAF50, Type: category.TypeIncome}

	require.NoError(t, s.CreateCategories(ctx, []*category.Category{food, salary}))
	assert.NotEqual(t, uuid.Nil, food.ID)
	assert.NotEqual(t, food.ID, salary.ID)

	got, err := s.GetCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
	assert.Equal(t, category.IconRestaurant, got.Icon)
	assert.Equal(t, category.Color(0xFFFF9800), got.Color)
	assert.Equal(t, category.TypeExpense, got.Type)
	assert.Equal(t, food.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())

	n, err := s.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expense := category.TypeExpense
	list, err := s.ListCategories(ctx, category.ListFilter{Type: &expense})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, food.ID, list[0].ID)

	name := "SALARY"
	list, err = s.ListCategories(ctx, category.ListFilter{Name: &name})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, salary.ID, list[0].ID)

	got.Name = "Groceries"
	got.Color = 0xFF000000
	require.NoError(t, s.UpdateCategory(ctx, got))

	got, err = s.GetCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)
	assert.Equal(t, category.Color(0xFF000000), got.Color)

	require.NoError(t, s.DeleteCategory(ctx, food.ID))

	_, err = s.GetCategory(ctx, food.ID)
	assert.ErrorIs(t, err, category.ErrNotFound)
	assert.ErrorIs(t, s.DeleteCategory(ctx, food.ID), category.ErrNotFound)
	assert.ErrorIs(t, s.UpdateCategory(ctx, food), category.ErrNotFound)
}

func TestStore_CountTransactions(t *testing.T) {
	ctx := context.Background()
	db := dbtest.SQLite(t)
	s := store.New(db)

	c := &category.Category{Name: "Food", Icon: category.IconRestaurant, Type: category.TypeExpense}
	require.NoError(t, s.CreateCategories(ctx, []*category.Category{c}))

	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, amount, name, category_id, type, occurred_at, created_at)
		VALUES ($1, 100, 'lunch', $2, 'expense', 0, 0)`, uuid.New(), c.ID)
	require.NoError(t, err)

	n, err := s.CountTransactions(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Referenced categories are protected by the foreign key as well.
	assert.ErrorIs(t, s.DeleteCategory(ctx, c.ID), category.ErrInUse)
}

func TestStore_UnknownIconFallsBack(t *testing.T) {
	ctx := context.Background()
	db := dbtest.SQLite(t)
	s := store.New(db)

	id := uuid.New()
	_, err := db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color, type, created_at)
		VALUES ($1, 'Legacy', 'rocket', 0, 'expense', 0)`, id)
	require.NoError(t, err)

	got, err := s.GetCategory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, category.IconCategory, got.Icon)
}
