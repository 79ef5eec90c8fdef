package promotion

type PromotionResultDto struct {
	VoucherCode string `json:"voucher_code"`
	Applied     bool   `json:"applied"`
	Subtotal    string `json:"subtotal"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}
