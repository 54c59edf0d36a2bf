package models

const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type Account struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"account_id"`
	FirstName    string `gorm:"not null"                  json:"account_firstname"`
	LastName     string `gorm:"not null"                  json:"account_lastname"`
	Email        string `gorm:"unique;not null"           json:"account_email"`
	PasswordHash string `gorm:"not null"                  json:"-"`
	Role         string `gorm:"not null;default:customer" json:"account_type"`
}

// IsStaff reports whether the account may manage inventory.
func (a Account) IsStaff() bool {
	return a.Role == RoleEmployee || a.Role == RoleAdmin
}

type Classification struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"classification_id"`
	Name string `gorm:"unique;not null"          json:"classification_name"`
}

type Vehicle struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"inv_id"`
	ClassificationID uint    `gorm:"index;not null"           json:"classification_id"`
	Make             string  `gorm:"not null"                 json:"inv_make"`
	Model            string  `gorm:"not null"                 json:"inv_model"`
	Year             int     `gorm:"not null"                 json:"inv_year"`
	Description      string  `gorm:"not null"                 json:"inv_description"`
	Image            string  `gorm:"not null"                 json:"inv_image"`
	Thumbnail        string  `gorm:"not null"                 json:"inv_thumbnail"`
	Price            float64 `gorm:"not null"                 json:"inv_price"`
	Miles            int     `gorm:"not null"                 json:"inv_miles"`
	Color            string  `gorm:"not null"                 json:"inv_color"`
}
