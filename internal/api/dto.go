package api

// Wire types mirror the backend's request and response bodies. Money
// fields are VND integers; derived amounts come back as floats.

// InventoryInfo is the stock snapshot embedded in product responses.
type InventoryInfo struct {
	Quantity int64  `json:"quantity"`
	Version  string `json:"version"`
}

// ProductResponse is one product, optionally with its inventory.
type ProductResponse struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Spec          int64          `json:"spec"`
	OriginalPrice int64          `json:"original_price"`
	Inventory     *InventoryInfo `json:"inventory,omitempty"`
}

type CreateProductRequest struct {
	Name          string `json:"name"`
	Spec          int64  `json:"spec"`
	OriginalPrice int64  `json:"original_price"`
}

type UpdateProductRequest struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Spec          int64  `json:"spec"`
	OriginalPrice int64  `json:"original_price"`
}

// InventoryResponse is the per-product inventory record. Version is
// the opaque optimistic-concurrency stamp; it must be echoed back
// unchanged on the next mutation of that record.
type InventoryResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Version   string `json:"version"`
}

// ProductInfo is the product summary embedded in inventory listings.
type ProductInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Spec          int64  `json:"spec"`
	OriginalPrice int64  `json:"original_price"`
}

type InventoryWithProductResponse struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"product_id"`
	Quantity  int64       `json:"quantity"`
	Version   string      `json:"version"`
	Product   ProductInfo `json:"product"`
}

// UpdateInventoryQuantityRequest sets a new absolute quantity. Version
// must be the stamp from the last read; a mismatch is rejected.
type UpdateInventoryQuantityRequest struct {
	Quantity int64  `json:"quantity"`
	Note     string `json:"note,omitempty"`
	Version  string `json:"version"`
}

// InventoryHistoryResponse is one entry of the quantity audit trail.
// Quantity is the signed delta, FinalQuantity the balance after it.
type InventoryHistoryResponse struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	Quantity      int64  `json:"quantity"`
	FinalQuantity int64  `json:"final_quantity"`
	ImporterName  string `json:"importer_name"`
	ImportedAt    string `json:"imported_at"`
	Note          string `json:"note,omitempty"`
	ReferenceID   int64  `json:"reference_id,omitempty"`
}

type CustomerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// OrderItemRequest is one order line as submitted. Version carries the
// inventory stamp read last; ExportFrom selects the supply channel.
type OrderItemRequest struct {
	ProductID     int64    `json:"product_id"`
	NumberOfBoxes *int64   `json:"number_of_boxes,omitempty"`
	Spec          *int64   `json:"spec,omitempty"`
	Quantity      int64    `json:"quantity"`
	SellingPrice  int64    `json:"selling_price"`
	Discount      int64    `json:"discount"`
	FinalAmount   *float64 `json:"final_amount,omitempty"`
	Version       string   `json:"version"`
	ExportFrom    string   `json:"export_from"`
}

type CreateOrderRequest struct {
	CustomerID         int64              `json:"customer_id"`
	OrderDate          string             `json:"order_date"`
	DeliveryStatus     string             `json:"delivery_status"`
	DebtStatus         string             `json:"debt_status,omitempty"`
	AdditionalCost     int64              `json:"additional_cost"`
	AdditionalCostNote string             `json:"additional_cost_note,omitempty"`
	OrderItems         []OrderItemRequest `json:"order_items"`
}

type UpdateOrderRequest struct {
	CustomerID         *int64  `json:"customer_id,omitempty"`
	OrderDate          *string `json:"order_date,omitempty"`
	DeliveryStatus     *string `json:"delivery_status,omitempty"`
	DebtStatus         *string `json:"debt_status,omitempty"`
	AdditionalCost     *int64  `json:"additional_cost,omitempty"`
	AdditionalCostNote *string `json:"additional_cost_note,omitempty"`
}

// OrderItemResponse is one stored order line. The profit fields are
// computed by the backend against the product's current cost.
type OrderItemResponse struct {
	ID                int64    `json:"id"`
	OrderID           int64    `json:"order_id"`
	ProductID         int64    `json:"product_id"`
	ProductName       string   `json:"product_name,omitempty"`
	NumberOfBoxes     *int64   `json:"number_of_boxes,omitempty"`
	Spec              *int64   `json:"spec,omitempty"`
	Quantity          int64    `json:"quantity"`
	SellingPrice      int64    `json:"selling_price"`
	Discount          int64    `json:"discount"`
	FinalAmount       *float64 `json:"final_amount,omitempty"`
	ExportFrom        string   `json:"export_from"`
	OriginalPrice     *int64   `json:"original_price,omitempty"`
	ProfitLoss        *float64 `json:"profit_loss,omitempty"`
	ProfitLossPercent *float64 `json:"profit_loss_percentage,omitempty"`
}

type OrderResponse struct {
	ID                 int64               `json:"id"`
	OrderDate          string              `json:"order_date"`
	DeliveryStatus     string              `json:"delivery_status"`
	DebtStatus         string              `json:"debt_status"`
	AdditionalCost     int64               `json:"additional_cost"`
	AdditionalCostNote string              `json:"additional_cost_note,omitempty"`
	OrderItems         []OrderItemResponse `json:"order_items"`
	Customer           CustomerResponse    `json:"customer"`
	TotalAmount        float64             `json:"total_amount"`
	TotalProfitLoss    *float64            `json:"total_profit_loss,omitempty"`
	TotalProfitLossPct *float64            `json:"total_profit_loss_percentage,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// DashboardStats is the summary block shown on the console dashboard.
type DashboardStats struct {
	TotalProducts       int64 `json:"total_products"`
	TotalCustomers      int64 `json:"total_customers"`
	TotalInventoryItems int64 `json:"total_inventory_items"`
	LowStockProducts    int64 `json:"low_stock_products"`
	TotalOrders         int64 `json:"total_orders"`
	PendingOrders       int64 `json:"pending_orders"`
}
