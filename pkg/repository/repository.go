// Package repository is the transactional persistence gateway. It wraps gorm
// with aggregate validation, duplicate-key translation, domain-event
// publication after successful writes, and ambient transaction propagation
// through the request context.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/pkg/db"
	"github.com/billfold/billfold/pkg/db/pagination"
	"github.com/billfold/billfold/pkg/ddd"
	"github.com/billfold/billfold/pkg/eventbus"
	"github.com/billfold/billfold/pkg/reqctx"
)

// Store is the generic gateway for one aggregate type. P is the pointer form
// of T and must satisfy ddd.Aggregate.
type Store[T any, P interface {
	*T
	ddd.Aggregate
}] struct {
	db  *gorm.DB
	bus *eventbus.Bus
	log *zap.Logger
}

func New[T any, P interface {
	*T
	ddd.Aggregate
}](conn *gorm.DB, bus *eventbus.Bus, log *zap.Logger) *Store[T, P] {
	return &Store[T, P]{db: conn, bus: bus, log: log}
}

// conn resolves the connection for this call: the ambient transaction when
// one is bound to the context, the pooled handle otherwise.
func (r *Store[T, P]) conn(ctx context.Context) *gorm.DB {
	if tx := reqctx.TxFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// FindOneByID returns the aggregate or nil. Store errors are logged and
// reported as absence; this read never fails the caller.
func (r *Store[T, P]) FindOneByID(ctx context.Context, id snowflake.ID) *T {
	var out T
	err := r.conn(ctx).First(&out, "id = ?", id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			r.log.Error("find by id failed",
				zap.String("id", id.String()),
				zap.String("request_id", reqctx.RequestIDFromContext(ctx)),
				zap.Error(err),
			)
		}
		return nil
	}
	return &out
}

func (r *Store[T, P]) FindAll(ctx context.Context) ([]*T, error) {
	var out []*T
	err := r.conn(ctx).Order("id").Find(&out).Error
	return out, err
}

// FindAllPaginated returns one page plus the total matching row count.
func (r *Store[T, P]) FindAllPaginated(ctx context.Context, page pagination.Pagination) (*pagination.Page[T], error) {
	page = page.Normalize(pagination.MaxLimit)

	conn := r.conn(ctx)

	var count int64
	if err := conn.Model(new(T)).Count(&count).Error; err != nil {
		return nil, err
	}

	var data []*T
	if err := conn.Order("id").Offset(page.Skip()).Limit(page.Limit).Find(&data).Error; err != nil {
		return nil, err
	}

	return &pagination.Page[T]{
		Data:  data,
		Count: count,
		Limit: page.Limit,
		Page:  page.Page,
	}, nil
}

// Insert validates every aggregate, writes them (batched when given more
// than one), and publishes each aggregate's buffered events in argument
// order before returning. A store uniqueness violation surfaces as
// *db.ConflictError; other store errors propagate unchanged.
func (r *Store[T, P]) Insert(ctx context.Context, aggregates ...*T) error {
	if len(aggregates) == 0 {
		return nil
	}

	for _, aggregate := range aggregates {
		if err := P(aggregate).Validate(); err != nil {
			return err
		}
	}

	conn := r.conn(ctx)
	var err error
	if len(aggregates) == 1 {
		err = conn.Create(aggregates[0]).Error
	} else {
		err = conn.Create(aggregates).Error
	}
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return db.NewConflictError(err)
		}
		return err
	}

	for _, aggregate := range aggregates {
		r.flushEvents(ctx, P(aggregate))
	}
	return nil
}

// Update validates and persists the aggregate's current state, then
// publishes its buffered events.
func (r *Store[T, P]) Update(ctx context.Context, aggregate *T) error {
	if err := P(aggregate).Validate(); err != nil {
		return err
	}

	if err := r.conn(ctx).Save(aggregate).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return db.NewConflictError(err)
		}
		return err
	}

	r.flushEvents(ctx, P(aggregate))
	return nil
}

// Delete removes the aggregate by id. A missing record is not an error: the
// method reports false and publishes nothing.
func (r *Store[T, P]) Delete(ctx context.Context, aggregate *T) (bool, error) {
	if err := P(aggregate).Validate(); err != nil {
		return false, err
	}

	res := r.conn(ctx).Delete(new(T), "id = ?", P(aggregate).AggregateID())
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	r.flushEvents(ctx, P(aggregate))
	return true, nil
}

// Transaction runs fn inside a store transaction. When the context already
// carries an ambient transaction the call joins it instead of opening a
// second one: at most one physical transaction exists per nesting tree. The
// ambient binding lives only in the derived context, so it cannot leak past
// fn even on failure.
func (r *Store[T, P]) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if reqctx.TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reqctx.WithTx(ctx, tx))
	})
}

func (r *Store[T, P]) flushEvents(ctx context.Context, aggregate ddd.Aggregate) {
	for _, e := range aggregate.PullEvents() {
		r.bus.Publish(ctx, e)
	}
}
