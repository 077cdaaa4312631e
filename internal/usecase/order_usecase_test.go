package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// カートストアは実物（メモリ実装）を使う。失敗時にカートが無傷かどうかを
// そのまま見たいので、ここだけはモックにしない。
func seedCart(store *infraRepo.CartMemoryStore, customerID int64, vendorID int64) {
	cart := model.NewCart(customerID, vendorID)
	cart.Add(100, "Pad Thai", 60)
	cart.Add(100, "Pad Thai", 60)
	cart.Add(101, "Thai Tea", 25)
	store.Save(context.Background(), cart)
}

func TestOrderUsecase_PlaceOrder_Unauthorized(t *testing.T) {
	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()
	uc := usecase.NewOrderUsecase(tx, store)

	_, err := uc.PlaceOrder(context.Background(), 0, usecase.PlaceOrderInput{PaymentMethod: "Cash"})
	assertErrContains(t, err, "unauthorized")
	assertHTTPStatus(t, err, 401)
}

// 新規注文パスのtx mock（キー検索はヒットしない）
func newOrderTxForTest() (*TxManagerMock, *OrderRepoMock) {
	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)
	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), mock.Anything).
		Return(model.Order{}, false, nil)
	return tx, ordersRepo
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	tx, _ := newOrderTxForTest()
	store := infraRepo.NewCartMemoryStore()
	uc := usecase.NewOrderUsecase(tx, store)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{PaymentMethod: "Cash"})
	assertErrContains(t, err, "cart empty")
	assertHTTPStatus(t, err, 400)
}

func TestOrderUsecase_PlaceOrder_InvalidPaymentMethod(t *testing.T) {
	tx, _ := newOrderTxForTest()
	store := infraRepo.NewCartMemoryStore()
	seedCart(store, 1, 10)

	uc := usecase.NewOrderUsecase(tx, store)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{PaymentMethod: "CreditCard"})
	assertErrContains(t, err, "invalid payment_method")
}

func TestOrderUsecase_PlaceOrder_PromptPayWithoutSlip_CartUntouched(t *testing.T) {
	ctx := context.Background()

	tx, _ := newOrderTxForTest()
	store := infraRepo.NewCartMemoryStore()
	seedCart(store, 1, 10)

	uc := usecase.NewOrderUsecase(tx, store)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{PaymentMethod: "PromptPay"})
	assertErrContains(t, err, "missing payment proof")
	assertHTTPStatus(t, err, 400)

	//失敗してもカートはそのまま
	cart, ok := store.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(3), cart.TotalItems())
	assert.Equal(t, int64(145), cart.TotalAmount())
}

func TestOrderUsecase_PlaceOrder_ShopClosed_CartUntouched(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()
	seedCart(store, 1, 10)

	ordersRepo := new(OrderRepoMock)
	vendorsRepo := new(VendorRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, vendors: vendorsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(model.Order{}, false, nil)
	vendorsRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Vendor{ID: 10, IsOpen: false}, nil)

	uc := usecase.NewOrderUsecase(tx, store)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		PaymentMethod:  "Cash",
		IdempotencyKey: "key-1",
	})
	assertErrContains(t, err, "shop closed")
	assertHTTPStatus(t, err, 409)

	cart, ok := store.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(3), cart.TotalItems())
}

func TestOrderUsecase_PlaceOrder_Success_SnapshotAndClear(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()
	seedCart(store, 1, 10)

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	vendorsRepo := new(VendorRepoMock)
	menuRepo := new(MenuItemRepoMock)

	tx.Repos = &TxReposMock{
		orders:     ordersRepo,
		orderItems: itemsRepo,
		vendors:    vendorsRepo,
		menuItems:  menuRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(model.Order{}, false, nil)
	vendorsRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Vendor{ID: 10, IsOpen: true}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.MenuItem{ID: 100, VendorID: 10, Name: "Pad Thai", Price: 60, IsAvailable: true}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(101)).
		Return(model.MenuItem{ID: 101, VendorID: 10, Name: "Thai Tea", Price: 25, IsAvailable: true}, nil)

	//初期ステータスはpending、合計はカートの値で凍結
	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusPending &&
			o.TotalAmount == 145 &&
			o.CustomerID == 1 &&
			o.VendorID == 10 &&
			o.IdempotencyKey == "key-1"
	})).Return(int64(55), nil)
	itemsRepo.On("CreateBulk", mock.Anything, int64(55), mock.Anything).Return(nil)

	uc := usecase.NewOrderUsecase(tx, store)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		PaymentMethod:  "Cash",
		IdempotencyKey: "key-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(55), out.ID)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, int64(145), out.TotalAmount)
	assert.Equal(t, 2, len(out.Items))
	assert.Equal(t, "Pad Thai", out.Items[0].Name)
	assert.Equal(t, int64(2), out.Items[0].Quantity)

	//確定後はカートが空
	_, ok := store.Get(ctx, 1)
	assert.False(t, ok)

	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_IdempotentReplay_ReturnsSameOrder(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()
	seedCart(store, 1, 10)

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	existing := model.Order{
		ID:          55,
		CustomerID:  1,
		VendorID:    10,
		Status:      model.OrderStatusPending,
		TotalAmount: 145,
	}
	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(existing, true, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(55)).
		Return([]model.OrderItem{{MenuItemID: 100, NameSnapshot: "Pad Thai", PriceSnapshot: 60, Quantity: 2}}, nil)

	uc := usecase.NewOrderUsecase(tx, store)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		PaymentMethod:  "Cash",
		IdempotencyKey: "key-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(55), out.ID)

	//二重送信では新規注文を作らない
	ordersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	//再送の応答で手元のカートを消さない（次の注文の分かもしれない）
	cart, ok := store.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(3), cart.TotalItems())
}

func TestOrderUsecase_PlaceOrder_RetryAfterCommit_ReplaysDespiteEmptyCart(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	//前回のコミットでカートは既に空
	store := infraRepo.NewCartMemoryStore()

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	existing := model.Order{
		ID:          42,
		CustomerID:  1,
		VendorID:    10,
		Status:      model.OrderStatusPending,
		TotalAmount: 145,
	}
	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(existing, true, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(42)).
		Return([]model.OrderItem{}, nil)

	uc := usecase.NewOrderUsecase(tx, store)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		PaymentMethod:  "Cash",
		IdempotencyKey: "key-1",
	})
	//カートが空でも「cart empty」ではなく同じ注文が返る
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "pending", out.Status)
}

func TestOrderUsecase_PlaceOrder_DuplicateKeyRace_ReturnsWinner(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()
	seedCart(store, 1, 10)

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	vendorsRepo := new(VendorRepoMock)
	menuRepo := new(MenuItemRepoMock)

	tx.Repos = &TxReposMock{
		orders:     ordersRepo,
		orderItems: itemsRepo,
		vendors:    vendorsRepo,
		menuItems:  menuRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//1回目の検索では無かったが、INSERTまでの間に同じキーが先に入った
	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(model.Order{}, false, nil).Once()
	vendorsRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Vendor{ID: 10, IsOpen: true}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.MenuItem{ID: 100, VendorID: 10, Name: "Pad Thai", Price: 60, IsAvailable: true}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(101)).
		Return(model.MenuItem{ID: 101, VendorID: 10, Name: "Thai Tea", Price: 25, IsAvailable: true}, nil)

	ordersRepo.On("Create", mock.Anything, mock.Anything).
		Return(int64(0), repo.ErrDuplicateKey)

	winner := model.Order{ID: 55, CustomerID: 1, VendorID: 10, Status: model.OrderStatusPending, TotalAmount: 145}
	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(winner, true, nil).Once()
	itemsRepo.On("ListByOrderID", mock.Anything, int64(55)).
		Return([]model.OrderItem{}, nil)

	uc := usecase.NewOrderUsecase(tx, store)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		PaymentMethod:  "Cash",
		IdempotencyKey: "key-1",
	})
	assert.NoError(t, err)
	//負けた側も勝った注文を受け取る
	assert.Equal(t, int64(55), out.ID)
}

func TestOrderUsecase_PlaceOrder_UnavailableMenuItem(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()

	cart := model.NewCart(1, 10)
	cart.Add(100, "Pad Thai", 60)
	store.Save(ctx, cart)

	ordersRepo := new(OrderRepoMock)
	vendorsRepo := new(VendorRepoMock)
	menuRepo := new(MenuItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, vendors: vendorsRepo, menuItems: menuRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").
		Return(model.Order{}, false, nil)
	vendorsRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Vendor{ID: 10, IsOpen: true}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.MenuItem{ID: 100, VendorID: 10, IsAvailable: false}, nil)

	uc := usecase.NewOrderUsecase(tx, store)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		PaymentMethod:  "Cash",
		IdempotencyKey: "key-1",
	})
	assertHTTPStatus(t, err, 400)
}

func TestOrderUsecase_ListMyOrders_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	store := infraRepo.NewCartMemoryStore()

	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("ListByCustomerID", mock.Anything, int64(1)).Return([]model.Order{
		{ID: 10, CustomerID: 1, Status: model.OrderStatusPending},
		{ID: 11, CustomerID: 1, Status: model.OrderStatusCompleted},
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewOrderUsecase(tx, store)

	outs, err := uc.ListMyOrders(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))

	ordersRepo.AssertExpectations(t)
}

func TestOrderUsecase_ListMyOrders_Unauthorized(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewOrderUsecase(tx, infraRepo.NewCartMemoryStore())

	_, err := uc.ListMyOrders(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}
