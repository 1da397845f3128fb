package response

import "time"

type Showtime struct {
	UID        string    `json:"uid"`
	MovieUID   string    `json:"movie_uid"`
	HallUID    string    `json:"hall_uid"`
	MovieTitle string    `json:"movie_title"`
	HallName   string    `json:"hall_name"`
	CinemaName string    `json:"cinema_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	AdultPrice int64     `json:"adult_price"`
	ChildPrice int64     `json:"child_price"`
}
