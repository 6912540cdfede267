package request

type LoginRequest struct {
	PIN string `json:"pin" binding:"required,min=4"`
}
