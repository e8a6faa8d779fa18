package customers

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/skillsenselab/customer-api/database"
	apperrors "github.com/skillsenselab/customer-api/errors"
	"github.com/skillsenselab/customer-api/logger"
)

// CreateInput carries the fields for a new customer.
type CreateInput struct {
	CompanyName  string `json:"companyname" validate:"required,min=1,max=40"`
	ContactName  string `json:"contactname" validate:"omitempty,max=30"`
	ContactTitle string `json:"contacttitle" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=60"`
	City         string `json:"city" validate:"omitempty,max=15"`
	Region       string `json:"region" validate:"omitempty,max=15"`
	PostalCode   string `json:"postalcode" validate:"omitempty,max=10"`
	Country      string `json:"country" validate:"omitempty,max=15"`
	Phone        string `json:"phone" validate:"omitempty,max=24"`
	Fax          string `json:"fax" validate:"omitempty,max=24"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	CompanyName  *string `json:"companyname" validate:"omitempty,min=1,max=40"`
	ContactName  *string `json:"contactname" validate:"omitempty,max=30"`
	ContactTitle *string `json:"contacttitle" validate:"omitempty,max=30"`
	Address      *string `json:"address" validate:"omitempty,max=60"`
	City         *string `json:"city" validate:"omitempty,max=15"`
	Region       *string `json:"region" validate:"omitempty,max=15"`
	PostalCode   *string `json:"postalcode" validate:"omitempty,max=10"`
	Country      *string `json:"country" validate:"omitempty,max=15"`
	Phone        *string `json:"phone" validate:"omitempty,max=24"`
	Fax          *string `json:"fax" validate:"omitempty,max=24"`
}

// columns returns the non-nil fields as a column update map.
func (in *UpdateInput) columns() map[string]interface{} {
	cols := make(map[string]interface{})
	set := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	set("companyname", in.CompanyName)
	set("contactname", in.ContactName)
	set("contacttitle", in.ContactTitle)
	set("address", in.Address)
	set("city", in.City)
	set("region", in.Region)
	set("postalcode", in.PostalCode)
	set("country", in.Country)
	set("phone", in.Phone)
	set("fax", in.Fax)
	return cols
}

// Service implements customer CRUD over GORM.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService creates the customer service.
func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log.WithComponent("customers")}
}

// Create persists a new customer and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	customer := &Customer{
		CompanyName:  in.CompanyName,
		ContactName:  in.ContactName,
		ContactTitle: in.ContactTitle,
		Address:      in.Address,
		City:         in.City,
		Region:       in.Region,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		Phone:        in.Phone,
		Fax:          in.Fax,
	}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	s.log.Debug("Customer created", map[string]interface{}{"custid": customer.CustID})
	return customer, nil
}

// List returns all customers.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	var result []Customer
	if err := s.db.WithContext(ctx).Order("custid").Find(&result).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return result, nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id uint) (*Customer, error) {
	var customer Customer
	err := s.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NotFound("customer", strconv.FormatUint(uint64(id), 10))
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &customer, nil
}

// Update applies a partial update and returns the updated customer.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cols := in.columns()
	if len(cols) > 0 {
		if err := s.db.WithContext(ctx).Model(customer).Updates(cols).Error; err != nil {
			return nil, apperrors.DatabaseError(err)
		}
	}
	return customer, nil
}

// Delete removes the customer with the given id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Customer{}, id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("customer", strconv.FormatUint(uint64(id), 10))
	}
	s.log.Debug("Customer deleted", map[string]interface{}{"custid": id})
	return nil
}
