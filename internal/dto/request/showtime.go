package request

import "time"

type CreateShowtime struct {
	MovieUID   string    `json:"movie_uid" validate:"required,uuid"`
	HallUID    string    `json:"hall_uid" validate:"required,uuid"`
	StartsAt   time.Time `json:"starts_at" validate:"required"`
	AdultPrice int64     `json:"adult_price" validate:"required,gt=0"`
	ChildPrice int64     `json:"child_price" validate:"required,gt=0"`
}

type UpdateShowtime struct {
	StartsAt   time.Time `json:"starts_at" validate:"required"`
	AdultPrice int64     `json:"adult_price" validate:"required,gt=0"`
	ChildPrice int64     `json:"child_price" validate:"required,gt=0"`
}

type ListShowtime struct {
	MovieUID string `json:"movie_uid" validate:"omitempty,uuid"`
	HallUID  string `json:"hall_uid" validate:"omitempty,uuid"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
