package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusPlaced is the status every order is created with.
const OrderStatusPlaced = "Placed"

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	OTP        *string            `bson:"otp" json:"-"`
	OTPExpires *time.Time         `bson:"otpExpires" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasPendingOTP reports whether a reset code has been issued and not yet consumed.
func (u *User) HasPendingOTP() bool {
	return u.OTP != nil && u.OTPExpires != nil
}

// UserDetails is the public projection returned by signup and signin.
type UserDetails struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Name  string             `json:"name"`
}

func (u *User) Details() UserDetails {
	return UserDetails{ID: u.ID, Email: u.Email, Name: u.Name}
}

// CartItem is one line of a user's cart. (UserID, ItemName) is unique.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ItemName  string             `bson:"itemName" json:"itemName"`
	ItemPrice float64            `bson:"itemPrice" json:"itemPrice"`
	ItemURL   string             `bson:"itemUrl" json:"itemUrl"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Snapshot copies the purchasable fields of the line into an order item.
func (c CartItem) Snapshot() OrderItem {
	return OrderItem{
		ItemName:  c.ItemName,
		ItemPrice: c.ItemPrice,
		ItemURL:   c.ItemURL,
		Quantity:  c.Quantity,
	}
}

type CategoryItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	IDMeal       int64              `bson:"idMeal" json:"idMeal"`
	ItemCategory string             `bson:"itemCategory" json:"itemCategory"`
	StrMeal      string             `bson:"strMeal" json:"strMeal"`
	StrMealThumb string             `bson:"strMealThumb" json:"strMealThumb"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderItem struct {
	ItemName  string  `bson:"itemName" json:"itemName"`
	ItemPrice float64 `bson:"itemPrice" json:"itemPrice"`
	ItemURL   string  `bson:"itemUrl" json:"itemUrl"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order is written once and never updated.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentID   string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status      string             `bson:"status" json:"status"`
	OrderDate   time.Time          `bson:"orderDate" json:"orderDate"`
}
