package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eng-Domz/Book-Store/internal/domain"
	"github.com/Eng-Domz/Book-Store/pkg/database"
)

func setupPublisherOrderRepo(t *testing.T) (*PublisherOrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewPublisherOrderRepository(mock), mock
}

func samplePublisherOrder() domain.PublisherOrder {
	return domain.PublisherOrder{
		ID:        "po-1",
		ISBN:      testISBN,
		Publisher: "Prentice Hall",
		Quantity:  20,
		Status:    domain.PublisherOrderStatusPending,
		OrderDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPublisherOrderRepository_Create(t *testing.T) {
	repo, mock := setupPublisherOrderRepo(t)
	defer mock.Close()

	po := samplePublisherOrder()
	mock.ExpectExec("INSERT INTO publisher_orders").
		WithArgs(po.ID, po.ISBN, po.Publisher, po.Quantity, po.OrderDate, po.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), &po))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublisherOrderRepository_GetForUpdate_Success(t *testing.T) {
	repo, mock := setupPublisherOrderRepo(t)
	defer mock.Close()

	po := samplePublisherOrder()
	mock.ExpectQuery("SELECT .+ FROM publisher_orders .+ FOR UPDATE").
		WithArgs(po.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "isbn", "publisher", "quantity", "order_date", "status", "confirmed_at"}).
			AddRow(po.ID, po.ISBN, po.Publisher, po.Quantity, po.OrderDate, po.Status, nil))

	result, err := repo.GetForUpdate(context.Background(), mock, po.ID)

	require.NoError(t, err)
	assert.Equal(t, po.ID, result.ID)
	assert.True(t, result.IsPending())
	assert.Nil(t, result.ConfirmedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublisherOrderRepository_GetForUpdate_NotFound(t *testing.T) {
	repo, mock := setupPublisherOrderRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM publisher_orders .+ FOR UPDATE").
		WithArgs("po-missing").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetForUpdate(context.Background(), mock, "po-missing")

	assert.Nil(t, result)
	var notFound *domain.PublisherOrderNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublisherOrderRepository_MarkConfirmed(t *testing.T) {
	repo, mock := setupPublisherOrderRepo(t)
	defer mock.Close()

	confirmedAt := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE publisher_orders").
		WithArgs("po-1", domain.PublisherOrderStatusConfirmed, confirmedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.MarkConfirmed(context.Background(), mock, "po-1", confirmedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublisherOrderRepository_List(t *testing.T) {
	repo, mock := setupPublisherOrderRepo(t)
	defer mock.Close()

	po := samplePublisherOrder()
	mock.ExpectQuery("SELECT .+ FROM publisher_orders").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "isbn", "title", "publisher", "quantity", "order_date", "status", "confirmed_at", "total_count"}).
			AddRow(po.ID, po.ISBN, "Clean Code", po.Publisher, po.Quantity, po.OrderDate, po.Status, nil, 1))

	orders, total, err := repo.List(context.Background(), 1, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "Clean Code", orders[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
