package models

// Payment is the only persisted entity. ID is assigned by the store.
type Payment struct {
	ID     string `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	From   string `json:"from" bson:"from" gorm:"column:from_account;not null"`
	To     string `json:"to" bson:"to" gorm:"column:to_account;not null"`
	Amount int64  `json:"amount" bson:"amount" gorm:"not null"`
}

func (Payment) TableName() string {
	return "payments"
}
