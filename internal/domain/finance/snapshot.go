// Package finance calcula el snapshot de saldo de las finanzas personales.
package finance

import (
	"time"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// MonthStart devuelve el primer instante del mes calendario de now, en su zona horaria.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// BuildSnapshot arma el snapshot a partir de los totales históricos y del mes en curso.
// Saldo = ingresos totales - gastos totales.
func BuildSnapshot(userID string, allTime, month entity.FlowTotals, now time.Time) *entity.BalanceSnapshot {
	return &entity.BalanceSnapshot{
		UserID:       userID,
		Balance:      allTime.Income.Sub(allTime.Expense),
		TotalIncome:  allTime.Income,
		TotalExpense: allTime.Expense,
		MonthIncome:  month.Income,
		MonthExpense: month.Expense,
		UpdatedAt:    now,
	}
}

// Sum acumula transacciones con fecha >= since (since cero = todas).
func Sum(txs []*entity.Transaction, since time.Time) entity.FlowTotals {
	var t entity.FlowTotals
	for _, tx := range txs {
		if !since.IsZero() && tx.OccurredOn.Before(since) {
			continue
		}
		switch tx.Kind {
		case entity.TransactionIncome:
			t.Income = t.Income.Add(tx.Amount)
		case entity.TransactionExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	return t
}
