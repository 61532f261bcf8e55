// Package testhelpers provides in-memory stand-ins for the document store and
// blob store so services and handlers can be tested without MongoDB or a bucket.
package testhelpers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
)

// Clock hands out strictly increasing timestamps, standing in for the server clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type PropertyRepository struct {
	mu     sync.Mutex
	clock  *Clock
	docs   map[string]models.Property
	Calls  []string
	Errors map[string]error // keyed by method name
}

var _ repositories.PropertyRepository = (*PropertyRepository)(nil)

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{
		clock:  NewClock(),
		docs:   map[string]models.Property{},
		Errors: map[string]error{},
	}
}

func (r *PropertyRepository) record(method string) error {
	r.Calls = append(r.Calls, method)
	return r.Errors[method]
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Create"); err != nil {
		return err
	}
	now := r.clock.Now()
	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt, p.UpdatedAt = now, now
	r.docs[p.ID] = clone(*p)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrPropertyNotFound
	}
	out := clone(p)
	return &out, nil
}

func (r *PropertyRepository) List(ctx context.Context, q repositories.ListQuery) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("List"); err != nil {
		return nil, err
	}
	out := []models.Property{}
	for _, p := range r.docs {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.PropertyType != "" && p.PropertyType != q.PropertyType {
			continue
		}
		if q.PriceType != "" && p.PriceType != q.PriceType {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PropertyRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Update"); err != nil {
		return err
	}
	p, ok := r.docs[id]
	if !ok {
		return repositories.ErrPropertyNotFound
	}
	if err := applyFields(&p, fields); err != nil {
		return err
	}
	p.UpdatedAt = r.clock.Now()
	r.docs[id] = p
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Delete"); err != nil {
		return err
	}
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrPropertyNotFound
	}
	delete(r.docs, id)
	return nil
}

// Put stores p as-is, bypassing Create, and returns its id.
func (r *PropertyRepository) Put(p models.Property) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.clock.Now()
		p.UpdatedAt = p.CreatedAt
	}
	r.docs[p.ID] = clone(p)
	return p.ID
}

func (r *PropertyRepository) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.docs[id]
	return ok
}

func applyFields(p *models.Property, fields map[string]interface{}) error {
	var u models.PropertyUpdate
	for k, v := range fields {
		switch k {
		case "title":
			s := v.(string)
			u.Title = &s
		case "description":
			s := v.(string)
			u.Description = &s
		case "price":
			f := v.(float64)
			u.Price = &f
		case "priceType":
			t := v.(models.PriceType)
			u.PriceType = &t
		case "propertyType":
			t := v.(models.PropertyType)
			u.PropertyType = &t
		case "location":
			l := v.(models.Location)
			u.Location = &l
		case "details":
			d := v.(models.Details)
			u.Details = &d
		case "amenities":
			a := v.([]string)
			u.Amenities = &a
		case "images":
			p.Images = copyStrings(v.([]string))
		case "status":
			s := v.(models.PropertyStatus)
			u.Status = &s
		case "brokerContact":
			b := v.(models.BrokerContact)
			u.BrokerContact = &b
		default:
			return fmt.Errorf("unknown field %q", k)
		}
	}
	u.Apply(p)
	return nil
}

func clone(p models.Property) models.Property {
	p.Amenities = copyStrings(p.Amenities)
	p.Images = copyStrings(p.Images)
	p.Videos = copyStrings(p.Videos)
	return p
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

type InquiryRepository struct {
	mu     sync.Mutex
	clock  *Clock
	docs   map[string]models.Inquiry
	Errors map[string]error
}

var _ repositories.InquiryRepository = (*InquiryRepository)(nil)

func NewInquiryRepository() *InquiryRepository {
	return &InquiryRepository{clock: NewClock(), docs: map[string]models.Inquiry{}, Errors: map[string]error{}}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Errors["Create"]; err != nil {
		return err
	}
	inquiry.ID = primitive.NewObjectID().Hex()
	inquiry.CreatedAt = r.clock.Now()
	r.docs[inquiry.ID] = *inquiry
	return nil
}

func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Errors["List"]; err != nil {
		return nil, err
	}
	out := []models.Inquiry{}
	for _, i := range r.docs {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Errors["UpdateStatus"]; err != nil {
		return err
	}
	i, ok := r.docs[id]
	if !ok {
		return repositories.ErrInquiryNotFound
	}
	i.Status = status
	r.docs[id] = i
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Errors["Delete"]; err != nil {
		return err
	}
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrInquiryNotFound
	}
	delete(r.docs, id)
	return nil
}

type UserRepository struct {
	mu    sync.Mutex
	users map[string]models.User
	Err   error
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]models.User{}}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	user.Email = strings.ToLower(user.Email)
	if _, ok := r.users[user.Email]; ok {
		return repositories.ErrUserExists
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	r.users[user.Email] = *user
	return nil
}
