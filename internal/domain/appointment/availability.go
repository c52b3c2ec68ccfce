package appointment

type AvailabilityInput struct {
	StaffID   uint
	ServiceID uint
	Date      string // YYYY-MM-DD, business timezone
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
