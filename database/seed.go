package database

import (
	"errors"
	"log"

	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/utils/auth"
	"gorm.io/gorm"
)

// ErrAlreadySeeded is returned when demo data is already present
var ErrAlreadySeeded = errors.New("database already contains catalog data")

// EnsureDefaultAdmin creates the bootstrap admin account when missing.
// Runs at server startup; a no-op once the account exists.
func EnsureDefaultAdmin(db *gorm.DB, email, password, name string) error {
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if name == "" {
		name = "Admin"
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin account created for %s", email)
	return nil
}

// Seed loads the demo catalog. Invoked only from cmd/seed, never from the
// serving path, and refuses to run against a non-empty catalog.
func Seed(db *gorm.DB) error {
	var categories, cakes, testimonials int64
	db.Model(&model.Category{}).Count(&categories)
	db.Model(&model.Cake{}).Count(&cakes)
	db.Model(&model.Testimonial{}).Count(&testimonials)
	if categories > 0 || cakes > 0 || testimonials > 0 {
		return ErrAlreadySeeded
	}

	return db.Transaction(func(tx *gorm.DB) error {
		seedCategories := []model.Category{
			{ID: "cat-aniversario", Name: "Aniversário", Slug: "aniversario"},
			{ID: "cat-casamento", Name: "Casamento", Slug: "casamento"},
			{ID: "cat-especial", Name: "Ocasiões Especiais", Slug: "especial"},
		}
		if err := tx.Create(&seedCategories).Error; err != nil {
			return err
		}

		seedCakes := []model.Cake{
			{
				Name:        "Bolo Red Velvet",
				Description: "Delicioso bolo red velvet com cobertura de cream cheese",
				Price:       180.00,
				CategoryID:  "cat-aniversario",
				ImageURL:    "https://images.unsplash.com/photo-1586788680434-30d324b2d46f?w=600",
				Featured:    true,
			},
			{
				Name:        "Bolo de Chocolate Belga",
				Description: "Bolo de chocolate belga com ganache e morangos",
				Price:       220.00,
				CategoryID:  "cat-aniversario",
				ImageURL:    "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=600",
				Featured:    true,
			},
			{
				Name:        "Bolo Clássico de Casamento",
				Description: "Elegante bolo de 3 andares com decoração em flores",
				Price:       650.00,
				CategoryID:  "cat-casamento",
				ImageURL:    "https://images.unsplash.com/photo-1535254973040-607b474cb50d?w=600",
				Featured:    true,
			},
			{
				Name:        "Bolo Naked Cake",
				Description: "Bolo rústico com frutas frescas e flores comestíveis",
				Price:       280.00,
				CategoryID:  "cat-casamento",
				ImageURL:    "https://images.unsplash.com/photo-1464349095431-e9a21285b5f3?w=600",
			},
			{
				Name:        "Bolo de Morango",
				Description: "Bolo leve com chantilly e morangos frescos",
				Price:       150.00,
				CategoryID:  "cat-especial",
				ImageURL:    "https://images.unsplash.com/photo-1565958011703-44f9829ba187?w=600",
			},
			{
				Name:        "Bolo Confeitado Personalizado",
				Description: "Bolo decorado com tema à escolha do cliente",
				Price:       350.00,
				CategoryID:  "cat-especial",
				ImageURL:    "https://images.unsplash.com/photo-1558301211-0d8c8ddee6ec?w=600",
				Featured:    true,
			},
		}
		if err := tx.Create(&seedCakes).Error; err != nil {
			return err
		}

		seedTestimonials := []model.Testimonial{
			{
				AuthorName: "Maria Silva",
				Content:    "O bolo do casamento da minha filha ficou simplesmente perfeito! Todos os convidados elogiaram muito. Obrigada Paula!",
				Rating:     5,
			},
			{
				AuthorName: "João Santos",
				Content:    "Encomendei um bolo de aniversário para minha esposa e ela amou! Além de lindo, estava delicioso.",
				Rating:     5,
			},
			{
				AuthorName: "Ana Paula Costa",
				Content:    "Profissionalismo e carinho em cada detalhe. Já é a terceira vez que encomendo e sempre supera minhas expectativas!",
				Rating:     5,
			},
		}
		return tx.Create(&seedTestimonials).Error
	})
}
