package model

type SalesReportInput struct {
	From    string `query:"from"`
	To      string `query:"to"`
	GroupBy string `query:"groupBy" validate:"omitempty,oneof=hour day week month year"`
}

type SalesBucket struct {
	Period        string  `json:"period"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	Tax           float64 `json:"tax"`
	DeliveryFees  float64 `json:"deliveryFees"`
	Discounts     float64 `json:"discounts"`
	AverageTicket float64 `json:"averageTicket"`
}

type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type SalesSummary struct {
	TotalOrders     int            `json:"totalOrders"`
	TotalRevenue    float64        `json:"totalRevenue"`
	AverageOrder    float64        `json:"averageOrder"`
	CancelledOrders int            `json:"cancelledOrders"`
	ByOrderType     map[string]int `json:"byOrderType"`
}

type SalesReport struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	GroupBy  string        `json:"groupBy"`
	Summary  SalesSummary  `json:"summary"`
	Buckets  []SalesBucket `json:"buckets"`
	TopItems []TopItem     `json:"topItems"`
}

type StaffHoursRow struct {
	StaffID       uint    `json:"staffId"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Shifts        int     `json:"shifts"`
	TotalHours    float64 `json:"totalHours"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	LaborCost     float64 `json:"laborCost"`
}

type InventoryReportRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CurrentStock float64 `json:"currentStock"`
	Unit         string  `json:"unit"`
	StockValue   float64 `json:"stockValue"`
	IsLow        bool    `json:"isLow"`
}

type InventoryReport struct {
	TotalValue float64              `json:"totalValue"`
	LowStock   int                  `json:"lowStock"`
	Items      []InventoryReportRow `json:"items"`
}

type CustomerReport struct {
	TotalCustomers  int64            `json:"totalCustomers"`
	Returning       int64            `json:"returning"`
	TotalSpent      float64          `json:"totalSpent"`
	AverageLifetime float64          `json:"averageLifetime"`
	TierBreakdown   map[string]int64 `json:"tierBreakdown"`
	TopCustomers    []Customer       `json:"topCustomers"`
}

type DashboardStats struct {
	TodayRevenue     float64 `json:"todayRevenue"`
	YesterdayRevenue float64 `json:"yesterdayRevenue"`
	RevenueGrowth    float64 `json:"revenueGrowth"`
	TodayOrders      int64   `json:"todayOrders"`
	YesterdayOrders  int64   `json:"yesterdayOrders"`
	OrderGrowth      float64 `json:"orderGrowth"`
	PendingOrders    int64   `json:"pendingOrders"`
	ActiveOrders     int64   `json:"activeOrders"`
	TotalCustomers   int64   `json:"totalCustomers"`
	LowStockItems    int64   `json:"lowStockItems"`
	StaffOnShift     int64   `json:"staffOnShift"`
	RecentOrders     []Order `json:"recentOrders"`
}
