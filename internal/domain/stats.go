package domain

// ProductStat сводка заказов по одному товару
type ProductStat struct {
	Name     string `json:"name"`
	Orders   int    `json:"orders"`
	Quantity int    `json:"quantity"`
}

// DashboardStats данные главной страницы админки
type DashboardStats struct {
	TotalOrders    int                 `json:"total_orders"`
	TotalMessages  int                 `json:"total_messages"`
	TotalCustomers int                 `json:"total_customers"`
	RecentOrders   int                 `json:"recent_orders"`
	UnreadMessages int                 `json:"unread_messages"`
	OrdersByStatus map[OrderStatus]int `json:"orders_by_status"`
	MessagesByType map[RequestType]int `json:"messages_by_type"`
	Products       []ProductStat       `json:"products"`
	LatestOrders   []Order             `json:"latest_orders"`
	LatestMessages []Message           `json:"latest_messages"`
}
