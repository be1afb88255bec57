package models

// DeliveryOption is a selectable shipping method. Its price feeds the order
// aggregation as the flat shipping cost; 0 means free shipping.
type DeliveryOption struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"unique;not null" json:"name"`
	Price            float64 `gorm:"not null" json:"price"`
	EstimatedDaysMin int     `json:"estimated_days_min"`
	EstimatedDaysMax int     `json:"estimated_days_max"`
}
