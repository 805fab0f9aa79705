package dto

type SubmitRatingRequest struct {
	Stars int `json:"stars" validate:"required,gte=1,lte=5"`
}

type RatingResponse struct {
	VendorID    string  `json:"vendor_id"`
	Rate        float64 `json:"rate"`
	RatingCount int     `json:"rating_count"`
}
