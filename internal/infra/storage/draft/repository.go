package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/psqlbuilder"
)

const tableName = "booking_drafts"

// Repository репозиторий черновиков бронирования
// На пользователя хранится ровно один черновик; поля черновика лежат в JSONB,
// поэтому сохранённый черновик может содержать любое подмножество полей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черновиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает черновик пользователя
// Если черновика нет, возвращает ErrDraftNotFound
func (r *Repository) Get(ctx context.Context, userID int64) (*domain.SavedDraft, error) {
	query, args, err := psqlbuilder.Select("user_id", "data", "updated_at").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		saved domain.SavedDraft
		data  []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&saved.UserID, &data, &saved.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan draft: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(data, &saved.Draft); err != nil {
		return nil, fmt.Errorf("%w: Get - decode data for user_id=%d: %v", ErrEncode, userID, err)
	}

	return &saved, nil
}

// Upsert сохраняет черновик пользователя (last-write-wins)
// Существующий черновик полностью заменяется
func (r *Repository) Upsert(ctx context.Context, userID int64, draft domain.BookingDraft) (*domain.SavedDraft, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - encode data: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("user_id", "data").
		Values(userID, data).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW() RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved := &domain.SavedDraft{UserID: userID, Draft: draft}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return saved, nil
}
