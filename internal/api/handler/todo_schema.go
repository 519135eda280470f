package handler

type createTodoRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type updateTodoRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type toggleResponse struct {
	IsCompleted bool `json:"isCompleted"`
}
