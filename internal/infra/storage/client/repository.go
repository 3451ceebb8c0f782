package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreateByEmail находит клиента по email или создает нового.
// У существующего клиента обновляются имя и телефон из заявки.
// Email нормализуется к нижнему регистру, вызывается внутри транзакции допуска
func (r *Repository) FindOrCreateByEmail(ctx context.Context, email, name string, phone *string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	normalized := strings.ToLower(strings.TrimSpace(email))

	existing, err := r.getByEmail(ctx, executor, normalized)
	if err != nil && err != ErrClientNotFound {
		return nil, err
	}

	if existing != nil {
		return r.update(ctx, executor, existing.ID, name, phone)
	}

	return r.create(ctx, executor, normalized, name, phone)
}

func (r *Repository) getByEmail(ctx context.Context, executor DBExecutor, email string) (*domain.Client, error) {
	query, args, err := psqlbuilder.Select("id", "email", "name", "phone").
		From("clients").
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Email, &c.Name, &c.Phone)

	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByEmail - scan client: %v", ErrScanRow, err)
	}

	return &c, nil
}

func (r *Repository) update(ctx context.Context, executor DBExecutor, id uuid.UUID, name string, phone *string) (*domain.Client, error) {
	builder := psqlbuilder.Update("clients").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, email, name, phone")

	if phone != nil {
		builder = builder.Set("phone", phone)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: update - build update query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Email, &c.Name, &c.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: update - scan client: %v", ErrScanRow, err)
	}

	return &c, nil
}

func (r *Repository) create(ctx context.Context, executor DBExecutor, email, name string, phone *string) (*domain.Client, error) {
	query, args, err := psqlbuilder.Insert("clients").
		Columns("id", "email", "name", "phone").
		Values(uuid.New(), email, name, phone).
		Suffix("RETURNING id, email, name, phone").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: create - build insert query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Email, &c.Name, &c.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: create - scan client: %v", ErrScanRow, err)
	}

	return &c, nil
}
