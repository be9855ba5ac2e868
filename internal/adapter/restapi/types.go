package restapi

import "github.com/su-perfume/storefront/internal/core/domain"

type (
	Product struct {
		ID          string  `json:"_id"`
		Name        string  `json:"name"`
		Brand       string  `json:"brand"`
		Cost        float64 `json:"cost"`
		Description string  `json:"description"`
		ImgURL      string  `json:"imgURL"`
	}

	User struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	AuthResponse struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
	}

	UploadResponse struct {
		ImageURL string `json:"imageUrl"`
	}
)

func (p Product) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Cost:        p.Cost,
		Description: p.Description,
		ImageURL:    p.ImgURL,
	}
}

func fromDomain(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Cost:        p.Cost,
		Description: p.Description,
		ImgURL:      p.ImageURL,
	}
}

func (r AuthResponse) toDomain() domain.Session {
	s := domain.Session{Token: r.Token}
	if r.User != nil {
		s.User = domain.User{
			ID:    r.User.ID,
			Name:  r.User.Name,
			Email: r.User.Email,
			Role:  r.User.Role,
		}
		s.Role = r.User.Role
	}
	return s
}
