package model

// カートの1行。name/price/category/imageは追加時点のスナップショット（表示用）。
// 確定時の正の価格はカタログを再読みして決める。
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
}

// セッションに紐づくカート本体。値として受け渡す（隠れた可変状態を持たない）。
// 同一ProductIDの行は1つだけ。Quantity<=0の行は保持しない。
type Cart []CartLine

// ProductIDが一致する行のindexを返す。無ければ-1。
func (c Cart) IndexOf(productID int64) int {
	for i, line := range c {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
