package models

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleManager  UserRole = "manager"
	UserRoleEmployee UserRole = "employee"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleEmployee:
		return true
	}
	return false
}

type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusCompleted ReturnStatus = "completed"
)

// CanTransitionReturn reports whether a return may move from one status to
// another. Rejected and completed are terminal.
func CanTransitionReturn(from ReturnStatus, to ReturnStatus) bool {
	switch from {
	case ReturnStatusPending:
		return to == ReturnStatusApproved || to == ReturnStatusRejected
	case ReturnStatusApproved:
		return to == ReturnStatusCompleted
	default:
		return false
	}
}

type DebtStatus string

const (
	DebtStatusActive  DebtStatus = "active"
	DebtStatusPaid    DebtStatus = "paid"
	DebtStatusOverdue DebtStatus = "overdue"
)

func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusActive, DebtStatusPaid, DebtStatusOverdue:
		return true
	}
	return false
}

type InterestType string

const (
	InterestTypeFixed      InterestType = "fixed"
	InterestTypePercentage InterestType = "percentage"
)

type SubscriptionType string

const (
	SubscriptionTypeMonthly SubscriptionType = "monthly"
	SubscriptionTypeYearly  SubscriptionType = "yearly"
)
