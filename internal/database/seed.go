package database

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
)

// PasswordHasher hashes the seeded admin password.
type PasswordHasher func(plain string) (string, error)

// Seed inserts the starter catalogue when the publications table is empty and
// an admin account when no user holds adminEmail.  It is safe to call on
// every start.
func Seed(ctx context.Context, db *gorm.DB, adminEmail, adminPassword string, hash PasswordHasher) error {
	var n int64
	if err := db.WithContext(ctx).Model(&model.Publication{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		pubs := Catalogue()
		if err := db.WithContext(ctx).Create(&pubs).Error; err != nil {
			return err
		}
		log.Printf("seed: inserted %d publications", len(pubs))
	}

	email := strings.ToLower(strings.TrimSpace(adminEmail))
	if email == "" || adminPassword == "" {
		return nil
	}
	if err := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	h, err := hash(adminPassword)
	if err != nil {
		return err
	}
	admin := model.User{Email: email, Name: "Admin User", PasswordHash: h, Role: model.RoleAdmin}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("seed: created admin %s", email)
	return nil
}

// Catalogue is the starter set of publications.  Ratings start at zero and
// are derived from approved reviews.
func Catalogue() []model.Publication {
	mag := func(title, desc, price, category string, issues int, featured bool, image string) model.Publication {
		return model.Publication{
			Title: title, Type: model.TypeMagazine, Description: desc,
			Price: decimal.RequireFromString(price), Category: category,
			IssuesPerYear: &issues, Featured: featured, Image: image,
		}
	}
	paper := func(title, desc, price, category, city string, featured bool, image string) model.Publication {
		return model.Publication{
			Title: title, Type: model.TypeNewspaper, Description: desc,
			Price: decimal.RequireFromString(price), Category: category,
			City: &city, Featured: featured, Image: image,
		}
	}
	const (
		img1 = "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=400&h=500&fit=crop"
		img2 = "https://images.unsplash.com/photo-1518495973542-4542c06a5843?w=400&h=500&fit=crop"
		img3 = "https://images.unsplash.com/photo-1585829365295-ab7cd400c167?w=400&h=500&fit=crop"
		img4 = "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?w=400&h=500&fit=crop"
		img5 = "https://images.unsplash.com/photo-1495020689067-958852a7765e?w=400&h=500&fit=crop"
	)
	return []model.Publication{
		mag("The Economist", "International weekly covering current affairs, business, politics and technology.", "189.99", "Business & Finance", 51, true, img1),
		mag("National Geographic", "Science, geography, history and world culture.", "39.99", "Science & Nature", 12, true, img2),
		mag("The New Yorker", "Journalism, commentary, criticism, essays, fiction, cartoons and poetry.", "149.99", "Culture & Literature", 47, true, img3),
		mag("Wired", "How emerging technologies affect culture, the economy and politics.", "29.99", "Technology", 12, false, img4),
		mag("Time Magazine", "News magazine published and based in New York City.", "49.99", "News & Politics", 26, false, img5),
		paper("The Wall Street Journal", "Business-focused international daily based in New York City.", "38.99", "Business & Finance", "New York", true, img1),
		paper("The New York Times", "Daily newspaper based in New York City with a worldwide readership.", "17.99", "News & Politics", "New York", false, img3),
		paper("The Washington Post", "Daily newspaper published in Washington, D.C.", "15.99", "News & Politics", "Washington D.C.", false, img5),
		mag("Forbes", "Business magazine on finance, industry, investing and marketing.", "59.99", "Business & Finance", 8, false, img4),
		paper("Chicago Tribune", "Daily newspaper based in Chicago, Illinois.", "12.99", "News & Politics", "Chicago", false, img1),
		paper("Los Angeles Times", "Daily newspaper published in Los Angeles since 1881.", "14.99", "News & Politics", "Los Angeles", false, img3),
		paper("The Boston Globe", "Daily newspaper founded and based in Boston, Massachusetts.", "13.99", "News & Politics", "Boston", false, img1),
		paper("San Francisco Chronicle", "Newspaper serving the San Francisco Bay Area.", "15.99", "News & Politics", "San Francisco", false, img5),
	}
}
