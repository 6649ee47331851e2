package pg_save_repo

import (
	"context"
	"errors"
	"time"

	"gacha_roller/internal/model"
	"gacha_roller/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table = "saves"

	colPlayer    = "player_name"
	colVersion   = "version"
	colState     = "state"
	colBanned    = "banned"
	colKicked    = "kicked"
	colUpdatedAt = "updated_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewSaveRepository(dbc *pgxpool.Pool) repository.StoreSaveRepository {
	return &repo{
		dbc: dbc,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) Get(ctx context.Context, player string) (*model.SaveRecord, error) {
	query := sq.Select(colPlayer, colVersion, colState, colBanned, colKicked, colUpdatedAt).
		From(table).
		Where(sq.Eq{colPlayer: player}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rec model.SaveRecord
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&rec.Player, &rec.Version,
		&rec.State, &rec.Banned, &rec.Kicked, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSaveNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// Upsert Запись сохранения. Флаги модерации не трогаются: их выставляет
// только администратор напрямую в базе
func (r *repo) Upsert(ctx context.Context, rec *model.SaveRecord) error {
	query := sq.Insert(table).
		Columns(colPlayer, colVersion, colState, colUpdatedAt).
		Values(rec.Player, rec.Version, rec.State, time.Now().UTC()).
		Suffix("ON CONFLICT (" + colPlayer + ") DO UPDATE SET " +
			colVersion + " = EXCLUDED." + colVersion + ", " +
			colState + " = EXCLUDED." + colState + ", " +
			colUpdatedAt + " = EXCLUDED." + colUpdatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// Moderation Флаги banned/kicked игрока. Если записи нет — оба false
func (r *repo) Moderation(ctx context.Context, player string) (bool, bool, error) {
	query := sq.Select(colBanned, colKicked).
		From(table).
		Where(sq.Eq{colPlayer: player}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, false, err
	}

	var banned, kicked bool
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&banned, &kicked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}

	return banned, kicked, nil
}

func (r *repo) Delete(ctx context.Context, player string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colPlayer: player}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db(ctx).Exec(ctx, sqlStr, args...)
	return err
}
