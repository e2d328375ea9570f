package feature

// Columns is the fixed, ordered modeling feature list. Every row the engine
// produces has exactly these columns, total (no nulls: remaining gaps are
// filled with 0).
var Columns = []string{
	"TransactionTypeID", "Amount",
	"Origin_AccountTypeID", "Origin_AccountStatusID", "Origin_Balance",
	"Dest_AccountTypeID", "Dest_AccountStatusID", "Dest_Balance",
	"Origin_CustomerTypeID", "Dest_CustomerTypeID",
	"Origin_LoanCount", "Origin_TotalPrincipal", "Origin_AvgInterestRate",
	"Dest_LoanCount", "Dest_TotalPrincipal", "Dest_AvgInterestRate",
	"Origin_LoanStatus_Active", "Origin_LoanStatus_Overdue", "Origin_LoanStatus_Paid Off",
	"Dest_LoanStatus_Active", "Dest_LoanStatus_Overdue", "Dest_LoanStatus_Paid Off",
	"Amount_to_OriginBalance", "Amount_to_DestBalance", "Amount_to_AvgTransaction",
	"Origin_AccountInactive", "Dest_AccountInactive", "Age_Difference",
	"Origin_LoanLeverage", "Dest_LoanLeverage",
	"TransactionHour", "TransactionWeekday", "TransactionMonth", "TransactionQuarter",
	"IsWeekend", "IsBusinessHours", "IsNightTime",
	"LargeTransferFlag", "VeryLargeTransferFlag", "UnusualTimingFlag", "HighRiskFlag", "CrossTypeTransfer",
}

// Matrix is a named-column numeric table, the interchange format between the
// feature engine, the encoder and the detection collaborators.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// Col returns the index of a column, or -1 when absent.
func (m *Matrix) Col(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns one column as a slice, or nil when absent.
func (m *Matrix) Column(name string) []float64 {
	idx := m.Col(name)
	if idx < 0 {
		return nil
	}
	col := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		col[i] = row[idx]
	}
	return col
}
