package response

type City struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type Cinema struct {
	UID     string  `json:"uid"`
	CityUID string  `json:"city_uid"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  bool    `json:"active"`
}

type Hall struct {
	UID       string `json:"uid"`
	CinemaUID string `json:"cinema_uid"`
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Active    bool   `json:"active"`
	SeatCount int    `json:"seat_count,omitempty"`
}

type Seat struct {
	UID    string `json:"uid"`
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Active bool   `json:"active"`
}
