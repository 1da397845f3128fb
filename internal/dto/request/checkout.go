package request

type Checkout struct {
	ShowtimeUID string   `json:"showtime_uid" validate:"required,uuid"`
	SeatUIDs    []string `json:"seat_uids" validate:"required,min=1,max=10,unique,dive,uuid"`
	Amount      int64    `json:"amount" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"required,len=3,lowercase"`
	Email       *string  `json:"email" validate:"omitempty,email"`
}
