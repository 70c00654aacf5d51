package domain

import "time"

// Author is the projection of the submitting user shown in listings.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Company   string    `json:"company"`
	Questions []string  `json:"questions"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      *Author   `json:"user,omitempty"`
}

type PageQuery struct {
	Page  int
	Limit int
}

// Skip is the number of newest submissions that precede the page.
func (q PageQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

type Pagination struct {
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Current int `json:"current"`
}

type Page struct {
	Submissions []Submission `json:"submissions"`
	Pagination  Pagination   `json:"pagination"`
}

// PageCount is ceil(total/limit) in integer arithmetic.
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
