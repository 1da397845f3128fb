package response

// SeatMapEntry is one seat in a showtime's seat map, status resolved at read
// time against the reservation ledger.
type SeatMapEntry struct {
	UID    string `json:"uid"`
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type SeatMap struct {
	ShowtimeUID string         `json:"showtime_uid"`
	HallUID     string         `json:"hall_uid"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Seats       []SeatMapEntry `json:"seats"`
}
