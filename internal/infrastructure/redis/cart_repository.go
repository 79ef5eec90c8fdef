package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domcart "github.com/Zhima-Mochi/minishop-modules/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

var _ domcart.CartRepository = (*CartRepository)(nil)

const defaultCartTTL = 30 * 24 * time.Hour

type itemRecord struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type cartRecord struct {
	ID         string       `json:"id"`
	CustomerID string       `json:"customer_id"`
	Currency   string       `json:"currency"`
	Items      []itemRecord `json:"items"`
	Version    int64        `json:"version"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// saveCartScript writes ARGV[2] with a PX of ARGV[3] only when the stored
// record's version equals ARGV[1]. A missing key counts as version 0.
const saveCartScript = `
local cur = redis.call('GET', KEYS[1])
local version = 0
if cur then
  version = tonumber(cjson.decode(cur).version) or 0
end
if version ~= tonumber(ARGV[1]) then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// CartRepository keeps each cart under cart:<id>. Abandoned carts expire
// after ttl of inactivity. Saves are checked against the stored version
// inside one script call.
type CartRepository struct {
	kv  KV
	ttl time.Duration
}

func NewCartRepository(kv KV, ttl time.Duration) *CartRepository {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &CartRepository{kv: kv, ttl: ttl}
}

func cartKey(id domcart.CartID) string { return "cart:" + string(id) }

func (r *CartRepository) Save(ctx context.Context, c *domcart.Cart) (*domcart.Cart, error) {
	rec := cartRecord{
		ID:         string(c.ID),
		CustomerID: c.CustomerID,
		Currency:   c.Currency,
		Items:      make([]itemRecord, 0, len(c.Items)),
		Version:    c.Version + 1,
		UpdatedAt:  c.UpdatedAt,
	}
	for _, it := range c.Items {
		rec.Items = append(rec.Items, itemRecord{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice.StringFixed()})
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart %s: %w", c.ID, err)
	}
	stored, err := r.kv.Eval(ctx, saveCartScript, []string{cartKey(c.ID)},
		c.Version, encoded, r.ttl.Milliseconds()).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to store cart %s: %w", c.ID, err)
	}
	if stored == 0 {
		return nil, domcart.ErrVersionConflict
	}

	saved := c.Clone()
	saved.Version = rec.Version
	return saved, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id domcart.CartID) (*domcart.Cart, error) {
	data, err := r.kv.Get(ctx, cartKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domcart.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", id, err)
	}

	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	c := &domcart.Cart{
		ID:         domcart.CartID(rec.ID),
		CustomerID: rec.CustomerID,
		Currency:   rec.Currency,
		Items:      make([]domcart.Item, 0, len(rec.Items)),
		Version:    rec.Version,
		UpdatedAt:  rec.UpdatedAt,
	}
	for _, it := range rec.Items {
		price, err := money.Parse(it.UnitPrice, rec.Currency)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
		}
		c.Items = append(c.Items, domcart.Item{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price})
	}
	return c, nil
}
