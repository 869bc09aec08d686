package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	categoryStore "github.com/MrJamesThe3rd/pocket/internal/category/store"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/database/dbtest"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/report/store"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pocket/internal/transaction/store"
)

var wib = time.FixedZone("WIB", 7*60*60)

type fixture struct {
	db      *sql.DB
	store   *store.Store
	txs     *txStore.Store
	a, b, s *category.Category
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := dbtest.SQLite(t)

	a := &category.Category{Name: "A", Icon: category.IconRestaurant, Color: 0xFFFF9800, Type: category.TypeExpense}
	b := &category.Category{Name: "B", Icon: category.IconDirectionsCar, Color: 0xFF2196F3, Type: category.TypeExpense}
	s := &category.Category{Name: "Salary", Icon: category.IconAccountBalance, Color: 0xFF4CAF50, Type: category.TypeIncome}
	require.NoError(t, categoryStore.New(db).CreateCategories(context.Background(), []*category.Category{a, b, s}))

	cal := period.NewCalendar(wib, time.Monday)
	cal.Now = func() time.Time { return time.Date(2024, 1, 31, 12, 0, 0, 0, wib) }

	return fixture{
		db:    db,
		store: store.New(db, cal),
		txs:   txStore.New(db, database.DriverSQLite),
		a:     a,
		b:     b,
		s:     s,
	}
}

func (f fixture) add(t *testing.T, c *category.Category, amount int64, at time.Time) {
	t.Helper()

	require.NoError(t, f.txs.CreateTransaction(context.Background(), &transaction.Transaction{
		Amount:     amount,
		Name:       c.Name + " purchase",
		CategoryID: c.ID,
		Type:       c.Type,
		Date:       at,
	}))
}

func january() period.Range {
	return period.Range{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, wib),
		End:   time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), wib),
	}
}

func TestStore_JanuaryScenario(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	f.add(t, f.a, 100, time.Date(2024, 1, 5, 9, 0, 0, 0, wib))
	f.add(t, f.a, 50, time.Date(2024, 1, 5, 18, 30, 0, 0, wib))
	f.add(t, f.b, 30, time.Date(2024, 1, 20, 7, 0, 0, 0, wib))
	f.add(t, f.s, 1000, time.Date(2024, 1, 25, 8, 0, 0, 0, wib))
	// Outside the range on both sides.
	f.add(t, f.a, 999, time.Date(2023, 12, 31, 23, 59, 0, 0, wib))
	f.add(t, f.a, 999, time.Date(2024, 2, 1, 0, 0, 0, 0, wib))

	total, err := f.store.TotalByType(ctx, january(), category.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, int64(180), total)

	all, err := f.store.Total(ctx, january())
	require.NoError(t, err)
	assert.Equal(t, int64(1180), all)

	byCat, err := f.store.ByCategory(ctx, january(), category.TypeExpense)
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	assert.Equal(t, "A", byCat[0].Name)
	assert.Equal(t, int64(150), byCat[0].Total)
	assert.Equal(t, f.a.ID, byCat[0].CategoryID)
	assert.Equal(t, category.IconRestaurant, byCat[0].Icon)
	assert.Equal(t, "B", byCat[1].Name)
	assert.Equal(t, int64(30), byCat[1].Total)

	daily, err := f.store.DailyByType(ctx, january(), category.TypeExpense)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.True(t, daily[0].Day.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, wib)))
	assert.Equal(t, int64(150), daily[0].Total)
	assert.True(t, daily[1].Day.Equal(time.Date(2024, 1, 20, 0, 0, 0, 0, wib)))
	assert.Equal(t, int64(30), daily[1].Total)
}

func TestStore_EmptyAndInvertedRanges(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	f.add(t, f.a, 100, time.Date(2024, 1, 5, 9, 0, 0, 0, wib))

	inverted := period.Range{Start: january().End, End: january().Start}

	for _, r := range []period.Range{inverted, {Start: time.Date(2025, 1, 1, 0, 0, 0, 0, wib), End: time.Date(2025, 1, 2, 0, 0, 0, 0, wib)}} {
		total, err := f.store.Total(ctx, r)
		require.NoError(t, err)
		assert.Zero(t, total)

		byCat, err := f.store.ByCategory(ctx, r, category.TypeExpense)
		require.NoError(t, err)
		assert.NotNil(t, byCat)
		assert.Empty(t, byCat)

		daily, err := f.store.DailyByType(ctx, r, category.TypeExpense)
		require.NoError(t, err)
		assert.NotNil(t, daily)
		assert.Empty(t, daily)
	}
}

func TestStore_BoundariesInclusive(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	f.add(t, f.a, 10, january().Start)
	f.add(t, f.a, 20, january().End)

	total, err := f.store.TotalByType(ctx, january(), category.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
}

func TestStore_DailyUsesLocalDays(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// 2024-01-09 23:30 UTC is already 2024-01-10 in WIB.
	f.add(t, f.a, 40, time.Date(2024, 1, 9, 23, 30, 0, 0, time.UTC))
	f.add(t, f.b, 60, time.Date(2024, 1, 10, 10, 0, 0, 0, wib))

	daily, err := f.store.DailyByType(ctx, january(), category.TypeExpense)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.True(t, daily[0].Day.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, wib)))
	assert.Equal(t, int64(100), daily[0].Total)
}

func TestStore_ByCategoryOrdersTiesByName(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	f.add(t, f.b, 50, time.Date(2024, 1, 3, 9, 0, 0, 0, wib))
	f.add(t, f.a, 50, time.Date(2024, 1, 4, 9, 0, 0, 0, wib))

	byCat, err := f.store.ByCategory(ctx, january(), category.TypeExpense)
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	assert.Equal(t, "A", byCat[0].Name)
	assert.Equal(t, "B", byCat[1].Name)
}

func TestStore_Listings(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for d := 1; d <= 7; d++ {
		f.add(t, f.a, int64(d), time.Date(2024, 1, d, 12, 0, 0, 0, wib))
	}

	f.add(t, f.b, 500, time.Date(2024, 1, 3, 18, 0, 0, 0, wib))

	recent, err := f.store.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(7), recent[0].Amount)
	assert.Equal(t, "A", recent[0].CategoryName)

	day3 := period.Range{
		Start: time.Date(2024, 1, 3, 0, 0, 0, 0, wib),
		End:   time.Date(2024, 1, 3, 23, 59, 59, int(999*time.Millisecond), wib),
	}

	views, err := f.store.Transactions(ctx, day3)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(500), views[0].Amount)

	byCat, err := f.store.CategoryTransactions(ctx, f.b.ID, january())
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, f.b.ID, byCat[0].CategoryID)
}
