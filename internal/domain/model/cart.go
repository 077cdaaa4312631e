package model

// カートの1行。quantityは常に1以上（0になったら行ごと消す）。
type CartLine struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
}

// Cart は注文前の一時的な選択状態。
// 1つのカートは1店舗分だけ（店舗をまたぐカートは作らない）。
// 純粋なメモリ上のコレクションで、ネットワークも店舗の開閉も知らない。
type Cart struct {
	CustomerID int64      `json:"customer_id"`
	VendorID   int64      `json:"vendor_id"`
	Lines      []CartLine `json:"lines"`
}

func NewCart(customerID int64, vendorID int64) *Cart {
	return &Cart{
		CustomerID: customerID,
		VendorID:   vendorID,
		Lines:      []CartLine{},
	}
}

// Add は同じ商品なら数量+1、無ければ行を追加。
func (c *Cart) Add(menuItemID int64, name string, unitPrice int64) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		MenuItemID: menuItemID,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   1,
	})
}

// Remove は数量-1。1だったら行を削除。無い商品なら何もしない。
func (c *Cart) Remove(menuItemID int64) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID != menuItemID {
			continue
		}
		if c.Lines[i].Quantity <= 1 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
		c.Lines[i].Quantity--
		return
	}
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

func (c *Cart) QuantityOf(menuItemID int64) int64 {
	for _, l := range c.Lines {
		if l.MenuItemID == menuItemID {
			return l.Quantity
		}
	}
	return 0
}

func (c *Cart) TotalItems() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPrice * l.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
