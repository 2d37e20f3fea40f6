package models

// PaymentMethod defines the accepted ways a fee payment can be received.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCheque       PaymentMethod = "Cheque"
	MethodOnline       PaymentMethod = "Online"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodOnline:
		return true
	}
	return false
}

// Role names used for route gating.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleStudent  = "student"
	RoleParent   = "parent"
)
