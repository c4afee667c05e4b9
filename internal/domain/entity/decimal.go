package entity

import "github.com/shopspring/decimal"

// Decimales que guardan las columnas NUMERIC: cantidades de stock (12,3) e importes (12,2).
const (
	QuantityPlaces int32 = 3
	MoneyPlaces    int32 = 2
)

// FitsPlaces indica si d se guarda sin redondeo con places decimales.
func FitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// ValidMoney verifica que el importe tenga como máximo dos decimales.
func ValidMoney(d decimal.Decimal) bool {
	return FitsPlaces(d, MoneyPlaces)
}

// ValidStockQuantity verifica que la cantidad tenga como máximo tres decimales.
func ValidStockQuantity(d decimal.Decimal) bool {
	return FitsPlaces(d, QuantityPlaces)
}
