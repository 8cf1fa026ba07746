package transport

type CreateRatingRequest struct {
	Title    string  `json:"title"`
	Feedback string  `json:"feedback"`
	Ratings  float64 `json:"ratings"`
}

type UpdateRatingRequest struct {
	Title    *string  `json:"title"`
	Feedback *string  `json:"feedback"`
	Ratings  *float64 `json:"ratings"`
}
