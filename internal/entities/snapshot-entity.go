package entities

// SnapshotGroup — агрегат движения по группе (категория, размер)
// за отчётный месяц.
type SnapshotGroup struct {
	Category  string `json:"category"`
	Size      string `json:"size"`
	StockIn   int    `json:"stock_in"`
	StockOut  int    `json:"stock_out"`
	Remaining int    `json:"remaining"`
}

// MonthlySnapshot — состояние склада на конец месяца, восстановленное
// переигрыванием леджера. Не хранится — чистая функция от журнала.
type MonthlySnapshot struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Groups []SnapshotGroup `json:"groups"`
}
