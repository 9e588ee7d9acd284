package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/payment"
	"goldenspoon-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	err   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.OTP, u.OTPExpires = &otp, &expires
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Password, u.OTP, u.OTPExpires = hash, nil, nil
	return nil
}

type fakeCarts struct {
	mu        sync.Mutex
	items     []*models.CartItem
	clearErr  error
	listCalls int
}

func newFakeCarts() *fakeCarts { return &fakeCarts{} }

func (f *fakeCarts) Increment(ctx context.Context, d store.CartDelta) (*models.CartItem, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.UserID == d.UserID && it.ItemName == d.ItemName {
			it.Quantity += d.Delta
			cp := *it
			return &cp, false, nil
		}
	}
	if !d.Upsert {
		return nil, false, store.ErrNotFound
	}
	it := &models.CartItem{
		ID: primitive.NewObjectID(), UserID: d.UserID, ItemName: d.ItemName,
		ItemPrice: d.ItemPrice, ItemURL: d.ItemURL, Quantity: d.Delta,
	}
	f.items = append(f.items, it)
	cp := *it
	return &cp, true, nil
}

func (f *fakeCarts) DeleteIfDepleted(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items {
		if it.ID == id && it.Quantity <= 0 {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCarts) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []models.CartItem{}
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeCarts) DeleteByID(ctx context.Context, userID, itemID primitive.ObjectID) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items {
		if it.ID == itemID && it.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return it, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCarts) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return 0, f.clearErr
	}
	kept := f.items[:0]
	var n int64
	for _, it := range f.items {
		if it.UserID == userID {
			n++
			continue
		}
		kept = append(kept, it)
	}
	f.items = kept
	return n, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders []models.Order

	// missLookups makes the next n FindByPaymentID calls report not found,
	// as if a concurrent writer had not committed yet.
	missLookups int
	lookupInTx  []bool
}

func (f *fakeOrders) Create(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.PaymentID != "" {
		for _, o := range f.orders {
			if o.PaymentID == order.PaymentID {
				return store.ErrDuplicate
			}
		}
	}
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrders) FindByID(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.UserID == userID && o.ID == orderID {
			cp := o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrders) FindByPaymentID(ctx context.Context, userID primitive.ObjectID, paymentID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupInTx = append(f.lookupInTx, ctx.Value(txKey{}) != nil)
	if f.missLookups > 0 {
		f.missLookups--
		return nil, store.ErrNotFound
	}
	for _, o := range f.orders {
		if o.UserID == userID && o.PaymentID == paymentID {
			cp := o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

type txKey struct{}

// fakeTx snapshots the cart and order fakes and restores them when fn fails.
// Calls made inside fn carry txKey on their context.
type fakeTx struct {
	carts  *fakeCarts
	orders *fakeOrders
	calls  int
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	f.carts.mu.Lock()
	savedItems := make([]*models.CartItem, len(f.carts.items))
	for i, it := range f.carts.items {
		cp := *it
		savedItems[i] = &cp
	}
	f.carts.mu.Unlock()
	f.orders.mu.Lock()
	savedOrders := append([]models.Order(nil), f.orders.orders...)
	f.orders.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		f.carts.mu.Lock()
		f.carts.items = savedItems
		f.carts.mu.Unlock()
		f.orders.mu.Lock()
		f.orders.orders = savedOrders
		f.orders.mu.Unlock()
		return err
	}
	return nil
}

type fakeCatalog struct {
	mu        sync.Mutex
	items     []models.CategoryItem
	findCalls int
}

func (f *fakeCatalog) List(ctx context.Context, skip, limit int64) ([]models.CategoryItem, error) {
	out := []models.CategoryItem{}
	for i := skip; i < int64(len(f.items)) && i < skip+limit; i++ {
		out = append(out, f.items[i])
	}
	return out, nil
}

func (f *fakeCatalog) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeCatalog) FindByCategory(ctx context.Context, category string) ([]models.CategoryItem, error) {
	f.mu.Lock()
	f.findCalls++
	f.mu.Unlock()
	out := []models.CategoryItem{}
	for _, it := range f.items {
		if strings.EqualFold(it.ItemCategory, category) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Create(ctx context.Context, item *models.CategoryItem) error {
	item.ID = primitive.NewObjectID()
	f.items = append(f.items, *item)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID string) (string, error) { return "token-" + userID, nil }

type sentEmail struct {
	template, email, name, otp string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeNotifier) SendWelcome(ctx context.Context, email, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{template: "welcome", email: email, name: name})
	return f.err
}

func (f *fakeNotifier) SendOTP(ctx context.Context, email, name, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{template: "otp", email: email, name: name, otp: otp})
	return f.err
}

type gatewayCall struct {
	amountMinor int64
	currency    string
	receipt     string
}

type fakeGateway struct {
	calls []gatewayCall
	err   error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*payment.GatewayOrder, error) {
	f.calls = append(f.calls, gatewayCall{amountMinor, currency, receipt})
	if f.err != nil {
		return nil, f.err
	}
	return &payment.GatewayOrder{ID: "order_abc", Entity: "order", Amount: amountMinor, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

var errBoom = errors.New("boom")
