package repository

import (
	"context"
	"time"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

const customersTable = "customers"

// CustomerRepo persists customers through the record-store gateway.
type CustomerRepo struct {
	store store.Store
}

// NewCustomerRepo returns a CustomerRepo bound to the given gateway.
func NewCustomerRepo(s store.Store) *CustomerRepo { return &CustomerRepo{store: s} }

func customerFromRow(r store.Row) *model.Customer {
	return &model.Customer{
		ID:        rowInt64(r, "id"),
		Name:      rowString(r, "name"),
		Email:     rowString(r, "email"),
		Phone:     rowString(r, "phone"),
		City:      rowStringPtr(r, "city"),
		CreatedAt: rowTime(r, "created_at"),
	}
}

// Create inserts the customer and re-reads the stored row into c.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	row := store.Row{
		"name":       c.Name,
		"email":      c.Email,
		"phone":      c.Phone,
		"created_at": time.Now().UTC(),
	}
	if c.City != nil {
		row["city"] = *c.City
	} else {
		row["city"] = nil
	}
	id, err := r.store.Insert(ctx, customersTable, row)
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// GetByID returns a single customer or ErrCustomerNotFound.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	rows, err := r.store.SelectWhere(ctx, customersTable, store.Filter{"id": id}, &store.Options{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCustomerNotFound
	}
	return customerFromRow(rows[0]), nil
}

// GetByEmail returns the customer holding the given email address, or
// ErrCustomerNotFound when the address is unused.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	rows, err := r.store.SelectWhere(ctx, customersTable, store.Filter{"email": email}, &store.Options{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCustomerNotFound
	}
	return customerFromRow(rows[0]), nil
}

// List returns up to limit customers ordered by id.
func (r *CustomerRepo) List(ctx context.Context, limit int) ([]model.Customer, error) {
	rows, err := r.store.SelectWhere(ctx, customersTable, nil, &store.Options{OrderBy: "id", Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, *customerFromRow(row))
	}
	return out, nil
}

// Search lists customers matching the given equality filters. Nil
// arguments are skipped.
func (r *CustomerRepo) Search(ctx context.Context, email, city *string) ([]model.Customer, error) {
	filter := store.Filter{}
	if email != nil {
		filter["email"] = *email
	}
	if city != nil {
		filter["city"] = *city
	}
	rows, err := r.store.SelectWhere(ctx, customersTable, filter, &store.Options{OrderBy: "id"})
	if err != nil {
		return nil, err
	}
	out := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, *customerFromRow(row))
	}
	return out, nil
}

// Update applies the given column values and returns the re-read row.
func (r *CustomerRepo) Update(ctx context.Context, id int64, fields store.Row) (*model.Customer, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := r.store.Update(ctx, customersTable, fields, store.Filter{"id": id}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the customer and returns the row as it was before
// removal, or ErrCustomerNotFound.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) (*model.Customer, error) {
	prior, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Delete(ctx, customersTable, store.Filter{"id": id}); err != nil {
		return nil, err
	}
	return prior, nil
}
