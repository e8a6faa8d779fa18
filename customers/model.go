// Package customers implements the customer resource: the CRUD surface the
// auth middleware protects.
package customers

// Customer is a stored customer record. Column names and sizes follow the
// legacy customer table this service fronts.
type Customer struct {
	CustID       uint   `gorm:"primaryKey;autoIncrement;column:custid" json:"custid"`
	CompanyName  string `gorm:"size:40;not null;column:companyname" json:"companyname"`
	ContactName  string `gorm:"size:30;column:contactname" json:"contactname,omitempty"`
	ContactTitle string `gorm:"size:30;column:contacttitle" json:"contacttitle,omitempty"`
	Address      string `gorm:"size:60;column:address" json:"address,omitempty"`
	City         string `gorm:"size:15;column:city" json:"city,omitempty"`
	Region       string `gorm:"size:15;column:region" json:"region,omitempty"`
	PostalCode   string `gorm:"size:10;column:postalcode" json:"postalcode,omitempty"`
	Country      string `gorm:"size:15;column:country" json:"country,omitempty"`
	Phone        string `gorm:"size:24;column:phone" json:"phone,omitempty"`
	Fax          string `gorm:"size:24;column:fax" json:"fax,omitempty"`
}

// TableName keeps the legacy singular table name.
func (Customer) TableName() string { return "customer" }
