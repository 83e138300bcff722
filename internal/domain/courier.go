package domain

// CourierStatus is the derived availability of a courier.
type CourierStatus string

// List of possible courier statuses
const (
	CourierAvailable CourierStatus = "available"
	CourierBusy      CourierStatus = "busy"
	CourierCompleted CourierStatus = "completed"
)

// Courier represents a delivery courier. The stored password is never loaded.
type Courier struct {
	ID       int64
	Name     string
	Username string
	Phone    string
}

// CourierLoad is a courier together with its assignment history.
type CourierLoad struct {
	Courier
	// Busy is true while the courier has an order in Delivered status.
	Busy bool
	// Assignments counts every order ever assigned to the courier.
	Assignments int64
	// LastStatus is the status of the most recently assigned order, empty without history.
	LastStatus OrderStatus
}

// Status derives availability from the current assignments.
func (c CourierLoad) Status() CourierStatus {
	switch {
	case c.Busy:
		return CourierBusy
	case c.LastStatus == OrderCompleted:
		return CourierCompleted
	default:
		return CourierAvailable
	}
}
