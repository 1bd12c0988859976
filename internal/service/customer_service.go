package service

import (
	"context"
	"errors"
	"strings"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/repository"
	"github.com/eventdesk/eventdesk/internal/store"
)

// CreateCustomerInput is the payload for a customer signup.
type CreateCustomerInput struct {
	Name  string
	Email string
	Phone string
	City  *string
}

// UpdateCustomerInput carries optional field edits; nil means unchanged.
type UpdateCustomerInput struct {
	Name  *string
	Email *string
	Phone *string
	City  *string
}

// CustomerService manages customer signup and edits, guarding email
// uniqueness across all customers.
type CustomerService struct {
	customers *repository.CustomerRepo
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(customers *repository.CustomerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create validates the signup and inserts the customer. Fails with
// ErrDuplicateEmail when the address is already in use.
func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*model.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Name == "" {
		return nil, validationf("name is required")
	}
	if !isValidEmail(in.Email) {
		return nil, validationf("email is not a valid address")
	}

	if _, err := s.customers.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, err
	}

	c := &model.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone, City: in.City}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a customer by id.
func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// List returns up to limit customers.
func (s *CustomerService) List(ctx context.Context, limit int) ([]model.Customer, error) {
	return s.customers.List(ctx, limit)
}

// Search lists customers by exact email and/or city.
func (s *CustomerService) Search(ctx context.Context, email, city *string) ([]model.Customer, error) {
	return s.customers.Search(ctx, email, city)
}

// Update applies the provided edits. When the email changes, uniqueness
// is re-checked against every other customer.
func (s *CustomerService) Update(ctx context.Context, id int64, in UpdateCustomerInput) (*model.Customer, error) {
	fields := store.Row{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationf("name cannot be blank")
		}
		fields["name"] = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if !isValidEmail(email) {
			return nil, validationf("email is not a valid address")
		}
		existing, err := s.customers.GetByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, err
		}
		fields["email"] = email
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if len(fields) == 0 {
		return s.customers.GetByID(ctx, id)
	}
	return s.customers.Update(ctx, id, fields)
}

// Delete removes the customer and returns the deleted row.
func (s *CustomerService) Delete(ctx context.Context, id int64) (*model.Customer, error) {
	return s.customers.Delete(ctx, id)
}

// isValidEmail does a basic structural check; front ends own anything
// stricter.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
