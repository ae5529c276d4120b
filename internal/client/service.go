package client

import (
	"context"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id int64) (*Client, error)
	GetMany(ctx context.Context, ids []int64) ([]*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, id int64, apply func(c *Client) error) (*Client, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	Company *string
	Email   string
	Phone   *string
	Address *string
}

type Patch struct {
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Address *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	c := &Client{}
	params.applyTo(c)

	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]*Client, error) {
	if len(ids) == 0 {
		return map[int64]*Client{}, nil
	}

	clients, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	return byID, nil
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Replace(ctx context.Context, id int64, params CreateParams) (*Client, error) {
	return s.repo.Update(ctx, id, func(c *Client) error {
		params.applyTo(c)
		return validate(c)
	})
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Client, error) {
	return s.repo.Update(ctx, id, func(c *Client) error {
		patch.applyTo(c)
		return validate(c)
	})
}

// Delete removes the client along with all of its orders and invoices.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (p CreateParams) applyTo(c *Client) {
	c.Name = p.Name
	c.Company = p.Company
	c.Email = p.Email
	c.Phone = p.Phone
	c.Address = p.Address
}

func (p Patch) applyTo(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}

	if p.Company != nil {
		c.Company = p.Company
	}

	if p.Email != nil {
		c.Email = *p.Email
	}

	if p.Phone != nil {
		c.Phone = p.Phone
	}

	if p.Address != nil {
		c.Address = p.Address
	}
}

func validate(c *Client) error {
	errs := []error{
		fleet.Required("nombre", c.Name),
		fleet.MaxLen("nombre", c.Name, 255),
		fleet.Required("email", c.Email),
		fleet.MaxLen("email", c.Email, 254),
	}

	if c.Company != nil {
		errs = append(errs, fleet.MaxLen("empresa", *c.Company, 255))
	}

	if c.Phone != nil {
		errs = append(errs, fleet.MaxLen("telefono", *c.Phone, 20))
	}

	return fleet.FirstError(errs...)
}
