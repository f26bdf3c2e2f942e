package repository

import (
	"context"
	"strings"

	"github.com/kendall-kelly/stock-api/models"
	"gorm.io/gorm"
)

// ConsumerRepository reads and writes consumers
type ConsumerRepository struct {
	table[models.Consumer]
}

// NewConsumerRepository creates a consumer repository over db
func NewConsumerRepository(db *gorm.DB) *ConsumerRepository {
	return &ConsumerRepository{table[models.Consumer]{db: db, entity: "consumer"}}
}

func (r *ConsumerRepository) Create(ctx context.Context, consumer *models.Consumer) error {
	return r.create(ctx, consumer)
}

// GetByID returns a NotFoundError when the consumer does not exist
func (r *ConsumerRepository) GetByID(ctx context.Context, id uint) (*models.Consumer, error) {
	return r.getByID(ctx, id)
}

func (r *ConsumerRepository) GetAll(ctx context.Context) ([]models.Consumer, error) {
	return r.all(ctx)
}

func (r *ConsumerRepository) Update(ctx context.Context, id uint, patch ConsumerPatch) (*models.Consumer, error) {
	return r.update(ctx, id, patch.columns())
}

// Delete removes a consumer together with its orders and their items
func (r *ConsumerRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// SearchByName lists consumers whose name starts with prefix, ignoring case.
// LIKE wildcards in prefix are matched literally.
func (r *ConsumerRepository) SearchByName(ctx context.Context, prefix string) ([]models.Consumer, error) {
	pattern := escapeLike(strings.ToLower(prefix)) + "%"
	return findAll[models.Consumer](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where(`LOWER(consumers.name) LIKE ? ESCAPE '\'`, pattern)
	})
}

func (r *ConsumerRepository) GetOrders(ctx context.Context, consumerID uint) ([]models.ConsumerOrder, error) {
	return findAll[models.ConsumerOrder](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("consumer_orders.consumer_id = ?", consumerID)
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
