// Package catalog holds the operator-maintained browse data that is not part
// of the car inventory itself: dealer profiles and custom categories. Both
// are simple keyed records in Redis; every change is published on a channel
// so other observers (dashboards, cache warmers) can react.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"caromotors-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	dealersKey     = "caromotors:dealers"
	categoriesKey  = "caromotors:custom_categories"
	UpdatesChannel = "caromotors:catalog:updated"
)

// Dealer is an operator-managed dealer profile.
type Dealer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Place     string     `json:"place"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CustomCategory is an admin-defined category; cars match it by tag.
type CustomCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc,omitempty"`
}

// Notification describes a catalog change published on UpdatesChannel.
type Notification struct {
	Kind string `json:"kind"` // "dealer" or "category"
	Op   string `json:"op"`   // "saved" or "deleted"
	ID   string `json:"id"`
}

// Store is keyed persistence for dealers and custom categories with
// publish-on-change notification, backed by Redis hashes.
type Store struct {
	Rdb *redis.Client
}

// Dealers returns all dealer profiles, oldest first.
func (s *Store) Dealers(ctx context.Context) ([]Dealer, error) {
	raw, err := s.Rdb.HGetAll(ctx, dealersKey).Result()
	if err != nil {
		return nil, err
	}
	dealers := make([]Dealer, 0, len(raw))
	for _, v := range raw {
		var d Dealer
		if err := json.Unmarshal([]byte(v), &d); err != nil {
			continue
		}
		dealers = append(dealers, d)
	}
	sort.Slice(dealers, func(i, j int) bool {
		if dealers[i].CreatedAt.Equal(dealers[j].CreatedAt) {
			return dealers[i].ID < dealers[j].ID
		}
		return dealers[i].CreatedAt.Before(dealers[j].CreatedAt)
	})
	return dealers, nil
}

// DealerByID returns one dealer profile.
func (s *Store) DealerByID(ctx context.Context, id string) (*Dealer, error) {
	raw, err := s.Rdb.HGet(ctx, dealersKey, id).Result()
	if err == redis.Nil {
		return nil, apperr.NotFound("Dealer not found")
	}
	if err != nil {
		return nil, err
	}
	var d Dealer
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDealer stores a new dealer profile and publishes the change.
func (s *Store) SaveDealer(ctx context.Context, d Dealer) (*Dealer, error) {
	if d.Name == "" || d.Place == "" || d.Phone == "" {
		return nil, apperr.Validation("name, place and phone are required")
	}
	d.ID = fmt.Sprintf("dealer_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:5])
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = nil

	if err := s.setDealer(ctx, d); err != nil {
		return nil, err
	}
	s.publish(ctx, Notification{Kind: "dealer", Op: "saved", ID: d.ID})
	return &d, nil
}

// DealerPatch carries partial dealer updates; nil fields stay unchanged.
type DealerPatch struct {
	Name  *string
	Place *string
	Phone *string
	Email *string
	Notes *string
}

// UpdateDealer applies the patch to an existing dealer and publishes.
func (s *Store) UpdateDealer(ctx context.Context, id string, patch DealerPatch) (*Dealer, error) {
	d, err := s.DealerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Place != nil {
		d.Place = *patch.Place
	}
	if patch.Phone != nil {
		d.Phone = *patch.Phone
	}
	if patch.Email != nil {
		d.Email = *patch.Email
	}
	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}
	now := time.Now().UTC()
	d.UpdatedAt = &now

	if err := s.setDealer(ctx, *d); err != nil {
		return nil, err
	}
	s.publish(ctx, Notification{Kind: "dealer", Op: "saved", ID: d.ID})
	return d, nil
}

// DeleteDealer removes the dealer and publishes.
func (s *Store) DeleteDealer(ctx context.Context, id string) error {
	n, err := s.Rdb.HDel(ctx, dealersKey, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("Dealer not found")
	}
	s.publish(ctx, Notification{Kind: "dealer", Op: "deleted", ID: id})
	return nil
}

// CustomCategories returns all admin-defined categories, sorted by id.
func (s *Store) CustomCategories(ctx context.Context) ([]CustomCategory, error) {
	raw, err := s.Rdb.HGetAll(ctx, categoriesKey).Result()
	if err != nil {
		return nil, err
	}
	cats := make([]CustomCategory, 0, len(raw))
	for _, v := range raw {
		var c CustomCategory
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			continue
		}
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats, nil
}

// SaveCustomCategory stores a category, replacing any custom category with
// the same id. Built-in ids are reserved.
func (s *Store) SaveCustomCategory(ctx context.Context, c CustomCategory) (*CustomCategory, error) {
	if c.ID == "" || c.Label == "" {
		return nil, apperr.Validation("id and label are required")
	}
	if isBuiltInCategoryID(c.ID) {
		return nil, apperr.Validation("Category id is reserved")
	}

	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if err := s.Rdb.HSet(ctx, categoriesKey, c.ID, b).Err(); err != nil {
		return nil, err
	}
	s.publish(ctx, Notification{Kind: "category", Op: "saved", ID: c.ID})
	return &c, nil
}

// DeleteCustomCategory removes the category and publishes.
func (s *Store) DeleteCustomCategory(ctx context.Context, id string) error {
	n, err := s.Rdb.HDel(ctx, categoriesKey, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("Category not found")
	}
	s.publish(ctx, Notification{Kind: "category", Op: "deleted", ID: id})
	return nil
}

// Subscribe delivers one Notification per catalog change until ctx is done.
func (s *Store) Subscribe(ctx context.Context) (<-chan Notification, error) {
	sub := s.Rdb.Subscribe(ctx, UpdatesChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan Notification)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var n Notification
				if json.Unmarshal([]byte(msg.Payload), &n) != nil {
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *Store) setDealer(ctx context.Context, d Dealer) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.Rdb.HSet(ctx, dealersKey, d.ID, b).Err()
}

// publish is best-effort: a dropped notification never fails the write.
func (s *Store) publish(ctx context.Context, n Notification) {
	b, _ := json.Marshal(n)
	_ = s.Rdb.Publish(ctx, UpdatesChannel, b).Err()
}
