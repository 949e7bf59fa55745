package orders

import "errors"

var (
	// ErrNotFound is returned when no order matches the given id.
	ErrNotFound = errors.New("orders: not found")
	// ErrInvalidStatus is returned when a transition precondition fails.
	ErrInvalidStatus = errors.New("orders: invalid status for operation")
	// ErrSupplementNotPending guards duplicate supplement reviews.
	ErrSupplementNotPending = errors.New("orders: supplement not pending")
)

// User-facing guard messages for the archive workflow.
const (
	MsgOrderMissing   = "订单不存在"
	MsgArchiveGuard   = "仅已验收/已结算订单可归档"
	MsgUnarchiveGuard = "仅已归档订单支持取消归档"
)
