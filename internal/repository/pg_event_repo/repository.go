package pg_event_repo

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
	table = "events"

	colID          = "id"
	colEventName   = "event_name"
	colSuffixName  = "suffix_name"
	colSuffixMult  = "suffix_multiplier"
	colCreatedFrom = "created_from"
	colStartsAt    = "starts_at"
	colEndsAt      = "ends_at"
	colLuckMult    = "luck_multiplier"
	colMoneyMult   = "money_multiplier"
	colRollTime    = "roll_time"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewEventRepository(dbc *pgxpool.Pool) repository.EventStoreRepository {
	return &repo{
		dbc: dbc,
	}
}

// db Отдаёт транзакцию из контекста, если запрос выполняется под
// txManager.Do, иначе пул
func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

// Create Вставка ивента, возвращает запись с назначенным ID
func (r *repo) Create(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error) {
	query := sq.Insert(table).
		Columns(colEventName, colSuffixName, colSuffixMult, colCreatedFrom,
			colStartsAt, colEndsAt, colLuckMult, colMoneyMult, colRollTime).
		Values(ev.Name, ev.SuffixName, ev.SuffixBoost, ev.CreatedFrom,
			ev.StartsAt.UTC(), ev.EndsAt.UTC(), ev.LuckMult, ev.MoneyMult, ev.RollTime).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	created := ev
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&created.ID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListActive Записи, чьё окно содержит now: starts_at <= now AND ends_at > now,
// по возрастанию starts_at, с ограничением количества строк
func (r *repo) ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error) {
	now := time.Now().UTC()

	query := sq.Select(colID, colEventName, colSuffixName, colSuffixMult, colCreatedFrom,
		colStartsAt, colEndsAt, colLuckMult, colMoneyMult, colRollTime).
		From(table).
		Where(sq.LtOrEq{colStartsAt: now}).
		Where(sq.Gt{colEndsAt: now}).
		OrderBy(colStartsAt + " ASC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.ActiveEvent
	for rows.Next() {
		var ev model.ActiveEvent
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.SuffixName, &ev.SuffixBoost, &ev.CreatedFrom,
			&ev.StartsAt, &ev.EndsAt, &ev.LuckMult, &ev.MoneyMult, &ev.RollTime); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.ActiveEvent, error) {
	query := sq.Select(colID, colEventName, colSuffixName, colSuffixMult, colCreatedFrom,
		colStartsAt, colEndsAt, colLuckMult, colMoneyMult, colRollTime).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var ev model.ActiveEvent
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&ev.ID, &ev.Name, &ev.SuffixName,
		&ev.SuffixBoost, &ev.CreatedFrom, &ev.StartsAt, &ev.EndsAt,
		&ev.LuckMult, &ev.MoneyMult, &ev.RollTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}

	return &ev, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}
