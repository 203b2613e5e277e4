package dto

// Book as returned by the backend
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Genre       string `json:"genre" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// WishlistAddRequest adds an existing book to the user's wishlist
type WishlistAddRequest struct {
	BookID string `json:"bookId" validate:"required"`
}
